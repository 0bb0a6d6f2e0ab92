package ports

// Stripper removes comments and the contents of string and template literals from source text.
type Stripper interface {
	Strip(src string) string
}
