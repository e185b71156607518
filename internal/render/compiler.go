package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// Compiler invokes pdflatex on a generated document.
type Compiler struct {
	logger *zap.Logger
}

// NewCompiler returns a compiler; logger may be nil.
func NewCompiler(logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{logger: logger}
}

// Available reports whether pdflatex is on PATH.
func (c *Compiler) Available() bool {
	_, err := exec.LookPath("pdflatex")
	return err == nil
}

// Compile runs pdflatex on texPath, writing output next to it. passes is the
// number of runs: two are needed when the document resolves cross-references
// (the table of contents), one otherwise.
func (c *Compiler) Compile(ctx context.Context, texPath string, passes int) error {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return fmt.Errorf("pdflatex not found on PATH; install a TeX distribution (e.g. TeX Live) or rerun with --no-compile to keep the .tex file: %w", err)
	}
	if passes < 1 {
		passes = 1
	}

	outDir := filepath.Dir(texPath)
	for pass := 1; pass <= passes; pass++ {
		c.logger.Info("running pdflatex",
			zap.String("file", texPath),
			zap.Int("pass", pass),
			zap.Int("passes", passes))

		cmd := exec.CommandContext(ctx, "pdflatex",
			"-interaction=nonstopmode",
			"-halt-on-error",
			"-output-directory", outDir,
			texPath)
		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out

		if err := cmd.Run(); err != nil {
			c.logger.Error("pdflatex failed", zap.String("output", tail(out.String(), 2000)))
			return fmt.Errorf("pdflatex pass %d/%d failed: %w", pass, passes, err)
		}
	}

	c.logger.Info("pdf written", zap.String("file", pdfPath(texPath)))
	return nil
}

func pdfPath(texPath string) string {
	ext := filepath.Ext(texPath)
	return texPath[:len(texPath)-len(ext)] + ".pdf"
}

// tail returns the last n bytes of s; pdflatex logs are long and only the
// end carries the error.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
