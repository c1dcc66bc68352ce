package fst

// ProjectType Which side of the transitions Project keeps.
type ProjectType int

const (
	ProjectInput ProjectType = iota
	ProjectOutput
)

func (p ProjectType) String() string {
	switch p {
	case ProjectInput:
		return "input"
	case ProjectOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Invert Swaps the input and output labels of every transition.
func Invert(f *VectorFst) {
	for s := range f.states {
		trs := f.states[s].trs
		for i := range trs {
			trs[i].ILabel, trs[i].OLabel = trs[i].OLabel, trs[i].ILabel
		}
	}
}

// Project Turns the transducer into an acceptor by copying one side of each transition onto the other.
func Project(f *VectorFst, projectType ProjectType) {
	for s := range f.states {
		trs := f.states[s].trs
		for i := range trs {
			if projectType == ProjectInput {
				trs[i].OLabel = trs[i].ILabel
			} else {
				trs[i].ILabel = trs[i].OLabel
			}
		}
	}
}
