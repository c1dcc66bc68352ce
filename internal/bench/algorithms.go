package bench

import (
	"fmt"
	"slices"
	"strings"

	"github.com/geange/fst"
)

// Algorithm A transformation whose cost is measured. Run may modify the fst in place.
type Algorithm struct {
	Name        string
	Description string
	Run         func(f *fst.VectorFst) error
}

var algorithms = map[string]Algorithm{}

func register(a Algorithm) {
	algorithms[a.Name] = a
}

func init() {
	register(Algorithm{
		Name:        "rm_final_epsilon",
		Description: "remove epsilon transitions into final states without future",
		Run: func(f *fst.VectorFst) error {
			fst.RmFinalEpsilon(f)
			return nil
		},
	})
	register(Algorithm{
		Name:        "connect",
		Description: "remove states that are not accessible or not coaccessible",
		Run: func(f *fst.VectorFst) error {
			fst.Connect(f)
			return nil
		},
	})
	register(Algorithm{
		Name:        "invert",
		Description: "swap input and output labels",
		Run: func(f *fst.VectorFst) error {
			fst.Invert(f)
			return nil
		},
	})
	for _, p := range []fst.ProjectType{fst.ProjectInput, fst.ProjectOutput} {
		register(Algorithm{
			Name:        "project_" + p.String(),
			Description: "keep the " + p.String() + " labels on both sides",
			Run: func(f *fst.VectorFst) error {
				fst.Project(f, p)
				return nil
			},
		})
	}
	register(Algorithm{
		Name:        "tr_sort_ilabel",
		Description: "sort transitions by input label",
		Run: func(f *fst.VectorFst) error {
			fst.TrSort(f, fst.ILabelCompare)
			return nil
		},
	})
	register(Algorithm{
		Name:        "tr_sort_olabel",
		Description: "sort transitions by output label",
		Run: func(f *fst.VectorFst) error {
			fst.TrSort(f, fst.OLabelCompare)
			return nil
		},
	})
	register(Algorithm{
		Name:        "topsort",
		Description: "renumber states in topological order",
		Run: func(f *fst.VectorFst) error {
			if !fst.TopSort(f) {
				return fmt.Errorf("topsort: fst is cyclic")
			}
			return nil
		},
	})
	register(Algorithm{
		Name:        "shortest_distance",
		Description: "shortest distance from the start state, the fst is left unchanged",
		Run: func(f *fst.VectorFst) error {
			_ = fst.ShortestDistance(f)
			return nil
		},
	})
}

// Lookup Returns the registered algorithm called name.
func Lookup(name string) (Algorithm, error) {
	a, ok := algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("unknown algorithm %q, expected one of: %s", name, strings.Join(Names(), ", "))
	}
	return a, nil
}

// Names Returns the names of the registered algorithms, sorted.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
