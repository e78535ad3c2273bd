package scanner

// Environment requirements are advisory only: a missing variable is reported
// to the operator, never used to block a deploy.

import (
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// EnvRequirement describes one environment variable the scanned file reads.
type EnvRequirement struct {
	Name         string `json:"name"`
	Present      bool   `json:"present"`
	ExampleValue string `json:"exampleValue,omitempty"`
}

// Report bundles everything a scan learned about a folder: the match itself,
// the environment variables it depends on, and the sidecar files found next
// to the matched source.
type Report struct {
	Match      *ToolMatch       `json:"match"`
	Env        []EnvRequirement `json:"env,omitempty"`
	EnvExample string           `json:"envExample,omitempty"`
	HasGoMod   bool             `json:"hasGoMod"`
}

// Scan runs ScanFolder and enriches the match with environment requirements
// cross-referenced against a sibling .env.example, plus a note on whether a
// go.mod sits next to the matched file.
func (s *Scanner) Scan(root string) (*Report, error) {
	match, err := s.ScanFolder(root)

	if err != nil {
		return nil, err
	}

	report := &Report{Match: match}

	dir := filepath.Dir(match.FilePath)

	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
		report.HasGoMod = true
	} else if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
		report.HasGoMod = true
	}

	example := map[string]string{}

	for _, candidate := range []string{
		filepath.Join(dir, ".env.example"),
		filepath.Join(root, ".env.example"),
	} {
		parsed, err := godotenv.Read(candidate)
		if err != nil {
			continue
		}
		report.EnvExample = candidate
		example = parsed
		break
	}

	for _, name := range match.EnvVars {
		_, present := os.LookupEnv(name)

		report.Env = append(report.Env, EnvRequirement{
			Name:         name,
			Present:      present,
			ExampleValue: example[name],
		})

		if !present {
			log.Warn("environment variable not set", "name", name)
		}
	}

	return report, nil
}

// envVarsOf collects the distinct string-literal names passed to os.Getenv
// and os.LookupEnv anywhere in the file.
func envVarsOf(file *ast.File) []string {
	seen := map[string]bool{}

	ast.Inspect(file, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		pkg, ok := sel.X.(*ast.Ident)
		if !ok || pkg.Name != "os" {
			return true
		}

		if sel.Sel.Name != "Getenv" && sel.Sel.Name != "LookupEnv" {
			return true
		}

		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}

		if name, err := strconv.Unquote(lit.Value); err == nil && name != "" {
			seen[name] = true
		}

		return true
	})

	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
