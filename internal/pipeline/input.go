package pipeline

// Input identifies what the pipeline compiles: a file on disk or an
// in-memory source. It is a closed sum so substitution hooks cannot invent
// hybrid shapes.
type Input interface {
	input()
}

// FileInput compiles a file from disk.
type FileInput struct {
	Path string
}

// SourceInput compiles in-memory source under a display name.
type SourceInput struct {
	Name   string
	Source []byte
}

func (FileInput) input()   {}
func (SourceInput) input() {}

// InputPath returns the on-disk path behind an input, or "" for virtual ones.
func InputPath(in Input) string {
	if f, ok := in.(FileInput); ok {
		return f.Path
	}
	return ""
}
