package model

type DiffSign string

const (
	SignAdded   DiffSign = "+"
	SignRemoved DiffSign = "-"
	SignContext DiffSign = " "
)

// DiffLine is one line of a parsed unified diff. Number is the line number
// in the new revision for added and context lines, and in the old revision
// for removed lines.
type DiffLine struct {
	Number int      `json:"line_no"`
	Text   string   `json:"text"`
	Sign   DiffSign `json:"sign"`
}

// FileChangeSet holds the parsed changes of one file. All preserves the
// original diff order with all three signs; Added and Removed are the
// filtered views the rule engine works on.
type FileChangeSet struct {
	Path    string
	Added   []DiffLine
	Removed []DiffLine
	All     []DiffLine
}

func NewFileChangeSet(path string) *FileChangeSet {
	return &FileChangeSet{
		Path: path,
	}
}

func (f *FileChangeSet) AppendAdded(number int, text string) {
	line := DiffLine{Number: number, Text: text, Sign: SignAdded}
	f.Added = append(f.Added, line)
	f.All = append(f.All, line)
}

func (f *FileChangeSet) AppendRemoved(number int, text string) {
	line := DiffLine{Number: number, Text: text, Sign: SignRemoved}
	f.Removed = append(f.Removed, line)
	f.All = append(f.All, line)
}

func (f *FileChangeSet) AppendContext(number int, text string) {
	f.All = append(f.All, DiffLine{Number: number, Text: text, Sign: SignContext})
}
