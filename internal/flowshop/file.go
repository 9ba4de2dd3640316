package flowshop

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File — YAML-представление экземпляра.
//
//	machines: 3
//	jobs:
//	  - [5, 9, 3]
//	  - [9, 6, 4]
type File struct {
	Machines int     `yaml:"machines"`
	Jobs     [][]int `yaml:"jobs"`
}

func LoadFile(path string) (*Instance, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance file: %w", err)
	}
	return ParseYAML(b)
}

func ParseYAML(b []byte) (*Instance, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse instance file: %w", err)
	}
	return f.Instance()
}

// Instance превращает файл в экземпляр. Если machines не задано, число станков
// берётся по первой работе.
func (f File) Instance() (*Instance, error) {
	machines := f.Machines
	if machines == 0 && len(f.Jobs) > 0 {
		machines = len(f.Jobs[0])
	}
	return FromJobs(machines, f.Jobs)
}

// ToFile — обратное преобразование, используется для сохранения сгенерированных экземпляров.
func (inst *Instance) ToFile() File {
	jobs := make([][]int, inst.Jobs)
	for j := range jobs {
		jobs[j] = append([]int(nil), inst.Job(j)...)
	}
	return File{Machines: inst.Machines, Jobs: jobs}
}

func (f File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
