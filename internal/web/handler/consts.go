package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath is the prefix of every settings route.
	APIPath = RootPath + "api/"

	// ErrNilFatalLogMsg is used if app or store var pointer is nil.
	ErrNilFatalLogMsg = "app or store is nil"
)
