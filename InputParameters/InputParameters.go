package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type FitParameters struct {
	Title        string  `yaml:"Title"`
	N            int     `yaml:"N"`
	Rank         int     `yaml:"Rank"`
	NormalToFace bool    `yaml:"NormalToFace"`
	Faces        []int   `yaml:"Faces"` // Tetrahedron faces to constrain; face 0 is the validated one
	Resolution   int     `yaml:"Resolution"`
	Tolerance    float64 `yaml:"Tolerance"`
	Verbose      bool    `yaml:"Verbose"`
}

func (fp *FitParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, fp)
}

func (fp *FitParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", fp.Title)
	fmt.Printf("[%d]\t\t\t= N (samples per axis)\n", fp.N)
	fmt.Printf("[%d]\t\t\t= Rank\n", fp.Rank)
	fmt.Printf("[%v]\t\t\t= NormalToFace\n", fp.NormalToFace)
	if fp.NormalToFace {
		fmt.Printf("%v\t\t\t= Faces\n", fp.Faces)
	}
	fmt.Printf("[%d]\t\t\t= Resolution\n", fp.Resolution)
	fmt.Printf("%8.2e\t\t= Tolerance\n", fp.Tolerance)
}
