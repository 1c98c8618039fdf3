package carbon

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// extensionLanguages maps lower-cased file extensions to renderer modes.
var extensionLanguages = map[string]string{
	"bash":    "application/x-sh",
	"c":       "text/x-csrc",
	"clj":     "clojure",
	"coffee":  "coffeescript",
	"cpp":     "text/x-c++src",
	"cc":      "text/x-c++src",
	"cs":      "text/x-csharp",
	"css":     "css",
	"d":       "d",
	"dart":    "dart",
	"diff":    "diff",
	"elm":     "elm",
	"erl":     "erlang",
	"ex":      "elixir",
	"exs":     "elixir",
	"go":      "go",
	"graphql": "graphql",
	"groovy":  "groovy",
	"h":       "text/x-csrc",
	"hpp":     "text/x-c++src",
	"hs":      "haskell",
	"html":    "htmlmixed",
	"java":    "text/x-java",
	"jl":      "julia",
	"js":      "javascript",
	"json":    "application/json",
	"jsx":     "jsx",
	"kt":      "text/x-kotlin",
	"lisp":    "commonlisp",
	"lua":     "lua",
	"m":       "text/x-objectivec",
	"md":      "markdown",
	"ml":      "mllike",
	"nim":     "nim",
	"php":     "text/x-php",
	"pl":      "perl",
	"ps1":     "powershell",
	"py":      "python",
	"r":       "r",
	"rb":      "ruby",
	"rs":      "rust",
	"sass":    "sass",
	"scala":   "text/x-scala",
	"scss":    "text/x-scss",
	"sh":      "application/x-sh",
	"sol":     "solidity",
	"sql":     "sql",
	"swift":   "swift",
	"tcl":     "tcl",
	"tex":     "stex",
	"toml":    "toml",
	"ts":      "typescript",
	"tsx":     "text/typescript-jsx",
	"vb":      "vb",
	"vhdl":    "vhdl",
	"vue":     "vue",
	"xml":     "xml",
	"yaml":    "yaml",
	"yml":     "yaml",
}

// lexerLanguages maps chroma lexer names to renderer modes. It covers
// extensions the table above does not list (.mjs, .pyw, .gemspec, ...).
var lexerLanguages = map[string]string{
	"Bash":         "application/x-sh",
	"C":            "text/x-csrc",
	"C#":           "text/x-csharp",
	"C++":          "text/x-c++src",
	"CSS":          "css",
	"Clojure":      "clojure",
	"CoffeeScript": "coffeescript",
	"Common Lisp":  "commonlisp",
	"Crystal":      "crystal",
	"Dart":         "dart",
	"Diff":         "diff",
	"Docker":       "dockerfile",
	"Elixir":       "elixir",
	"Elm":          "elm",
	"Erlang":       "erlang",
	"Fortran":      "fortran",
	"Go":           "go",
	"GraphQL":      "graphql",
	"Groovy":       "groovy",
	"HTML":         "htmlmixed",
	"Handlebars":   "handlebars",
	"Haskell":      "haskell",
	"Java":         "text/x-java",
	"JavaScript":   "javascript",
	"JSON":         "application/json",
	"Julia":        "julia",
	"Kotlin":       "text/x-kotlin",
	"Lua":          "lua",
	"Markdown":     "markdown",
	"Nim":          "nim",
	"OCaml":        "mllike",
	"Objective-C":  "text/x-objectivec",
	"PHP":          "text/x-php",
	"Perl":         "perl",
	"PowerShell":   "powershell",
	"Python":       "python",
	"R":            "r",
	"Ruby":         "ruby",
	"Rust":         "rust",
	"SCSS":         "text/x-scss",
	"SQL":          "sql",
	"Sass":         "sass",
	"Scala":        "text/x-scala",
	"Swift":        "swift",
	"TOML":         "toml",
	"Tcl":          "tcl",
	"TeX":          "stex",
	"TypeScript":   "typescript",
	"VHDL":         "vhdl",
	"XML":          "xml",
	"YAML":         "yaml",
}

// Classify returns the renderer language mode for path, or AutoLanguage when
// the extension is unknown or missing.
func Classify(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return AutoLanguage
	}

	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}

	return classifyByLexer(filepath.Base(path))
}

// classifyByLexer consults chroma's filename registry.
func classifyByLexer(name string) string {
	lexer := lexers.Match(name)
	if lexer == nil {
		return AutoLanguage
	}
	if lang, ok := lexerLanguages[lexer.Config().Name]; ok {
		return lang
	}
	return AutoLanguage
}
