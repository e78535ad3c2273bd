package scanner

// Static discovery of MCP tool servers in a folder of Go source.  The scan is
// best effort: files that fail to parse are logged and skipped, and only a
// folder with no marker instance at all is treated as a hard failure.

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tooldock/tooldock/pkg/errors"
)

// DefaultMarker is the constructor identifier that marks a file as hosting an
// MCP tool server instance, matching the mark3labs/mcp-go idiom
// `srv := server.NewMCPServer(...)`.
const DefaultMarker = "NewMCPServer"

// ToolMatch records a located tool server instance.  It is created once per
// scan and never mutated afterwards.
type ToolMatch struct {
	FilePath     string   `json:"filePath"`
	InstanceName string   `json:"instanceName"`
	PackageName  string   `json:"packageName"`
	EnvVars      []string `json:"envVars,omitempty"`
}

type Scanner struct {
	marker string
	fset   *token.FileSet
}

// New returns a Scanner matching the given marker identifier.  An empty
// marker falls back to DefaultMarker.
func New(marker string) *Scanner {
	if marker == "" {
		marker = DefaultMarker
	}

	return &Scanner{
		marker: marker,
		fset:   token.NewFileSet(),
	}
}

// ScanFile parses a single Go file and reports the first assignment whose
// right-hand side calls the marker constructor, either bare (`NewMCPServer`)
// or qualified (`server.NewMCPServer`).  First match wins; the rest of the
// file is not inspected further.
func (s *Scanner) ScanFile(path string) (*ToolMatch, bool) {
	file, err := parser.ParseFile(s.fset, path, nil, parser.SkipObjectResolution)

	if err != nil {
		log.Warn("skipping unparsable file", "path", path, "error", err)
		return nil, false
	}

	var match *ToolMatch

	ast.Inspect(file, func(node ast.Node) bool {
		if match != nil {
			return false
		}

		switch stmt := node.(type) {
		case *ast.AssignStmt:
			match = s.matchAssign(path, file.Name.Name, stmt.Lhs, stmt.Rhs)
		case *ast.ValueSpec:
			lhs := make([]ast.Expr, len(stmt.Names))
			for i, name := range stmt.Names {
				lhs[i] = name
			}
			match = s.matchAssign(path, file.Name.Name, lhs, stmt.Values)
		}

		return match == nil
	})

	if match == nil {
		return nil, false
	}

	match.EnvVars = envVarsOf(file)
	return match, true
}

// matchAssign pairs left-hand identifiers with right-hand expressions and
// returns a match for the first pair whose value is a marker call.
func (s *Scanner) matchAssign(
	path string,
	pkgName string,
	lhs []ast.Expr,
	rhs []ast.Expr,
) *ToolMatch {
	for i, value := range rhs {
		if !s.isMarkerCall(value) {
			continue
		}

		var target ast.Expr
		if len(lhs) == len(rhs) {
			target = lhs[i]
		} else if len(rhs) == 1 && len(lhs) > 0 {
			target = lhs[0]
		}

		ident, ok := target.(*ast.Ident)
		if !ok || ident.Name == "_" {
			continue
		}

		return &ToolMatch{
			FilePath:     path,
			InstanceName: ident.Name,
			PackageName:  pkgName,
		}
	}

	return nil
}

// isMarkerCall reports whether expr is `Marker(...)` or `<pkg>.Marker(...)`.
func (s *Scanner) isMarkerCall(expr ast.Expr) bool {
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return false
	}

	switch fn := call.Fun.(type) {
	case *ast.Ident:
		return fn.Name == s.marker
	case *ast.SelectorExpr:
		return fn.Sel.Name == s.marker
	}

	return false
}

// ScanFolder walks root recursively and returns the first file that assigns a
// marker instance.  Additional marker files are logged and ignored so the
// operator can see the ambiguity.  A folder with no match is a hard error.
func (s *Scanner) ScanFolder(root string) (*ToolMatch, error) {
	var match *ToolMatch

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}

		if entry.IsDir() {
			if skipDir(entry.Name(), path != root) {
				return filepath.SkipDir
			}
			return nil
		}

		if skipFile(entry.Name()) {
			return nil
		}

		found, ok := s.ScanFile(path)
		if !ok {
			return nil
		}

		if match != nil {
			log.Warn("ignoring additional tool instance",
				"path", found.FilePath, "instance", found.InstanceName)
			return nil
		}

		log.Info("found tool instance",
			"path", found.FilePath, "instance", found.InstanceName)
		match = found
		return nil
	})

	if err != nil {
		return nil, err
	}

	if match == nil {
		return nil, errors.NewErrNoToolFound(root)
	}

	return match, nil
}

func skipDir(name string, nested bool) bool {
	if !nested {
		return false
	}
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func skipFile(name string) bool {
	if !strings.HasSuffix(name, ".go") {
		return true
	}
	return strings.HasSuffix(name, "_test.go")
}
