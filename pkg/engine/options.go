package engine

type Options struct {
	Hash             int
	ProgressMinNodes int
}

func NewOptions() Options {
	return Options{
		Hash:             16,
		ProgressMinNodes: 0,
	}
}
