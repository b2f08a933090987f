package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// artifactFileName is the name the artifact is checked under. Diagnostics
// reference it.
const artifactFileName = "artifact.ts"

// maxToolOutput caps how much raw tool output is attached to error metadata.
const maxToolOutput = 2048

// diagnosticRe matches compiler findings such as
// "artifact.ts(3,7): error TS1005: ';' expected.".
var diagnosticRe = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\):\s*error\s+(TS\d+):\s*(.+)$`)

// lenientCodes are findings about modules the throwaway workspace cannot
// resolve. Non-strict checking drops them so artifacts may import packages
// the stub tree does not cover.
var lenientCodes = map[string]struct{}{
	"TS2307": {}, // cannot find module
	"TS2305": {}, // module has no exported member
	"TS2339": {}, // property does not exist on type
}

// Command validates artifacts by running an external compiler, tsc by
// default, over a temporary workspace. It is safe for concurrent use.
type Command struct {
	argv   []string
	strict bool
}

var _ ports.Validator = (*Command)(nil)

// NewCommand returns a validator running the given command. The command
// string may carry leading arguments, e.g. "npx tsc".
func NewCommand(command string, strict bool) *Command {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		argv = []string{"tsc"}
	}
	return &Command{argv: argv, strict: strict}
}

// Check writes the code into a throwaway workspace beside the stub modules,
// runs the compiler over it and parses the findings. Raw tool output is
// streamed to output when it is non-nil. Findings in the code come back as
// diagnostics; the error reports the tool itself failing to run.
func (c *Command) Check(ctx context.Context, code, narrative string, output io.Writer) ([]domain.Diagnostic, error) {
	dir, err := os.MkdirTemp("", "snc-check-")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create checker workspace")
	}
	defer os.RemoveAll(dir)

	if err := c.writeWorkspace(dir, code); err != nil {
		return nil, err
	}

	args := make([]string, 0, len(c.argv)+1)
	args = append(args, c.argv[1:]...)
	args = append(args, "-p", "tsconfig.json")

	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	cmd.Dir = dir

	var buf bytes.Buffer
	var sink io.Writer = &buf
	if output != nil {
		sink = io.MultiWriter(&buf, output)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, zerr.Wrap(ctx.Err(), "checker interrupted")
	}

	diags := parseDiagnostics(buf.String())
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, zerr.With(zerr.Wrap(runErr, "failed to run checker tool"), "tool", c.argv[0])
		}
		// A non-zero exit with parseable findings is the normal failure
		// shape. Without findings the tool itself is broken.
		if len(diags) == 0 {
			toolErr := zerr.Wrap(runErr, "checker tool failed without reporting findings")
			toolErr = zerr.With(toolErr, "tool", c.argv[0])
			toolErr = zerr.With(toolErr, "exit_code", exitErr.ExitCode())
			if out := truncateOutput(buf.String()); out != "" {
				toolErr = zerr.With(toolErr, "output", out)
			}
			return nil, toolErr
		}
	}

	if !c.strict {
		diags = filterLenient(diags)
	}
	if len(diags) == 0 {
		diags = deriveExpectations(narrative).check(code)
	}
	return diags, nil
}

// writeWorkspace lays out the artifact, the stub modules and a generated
// tsconfig under dir.
func (c *Command) writeWorkspace(dir, code string) error {
	if err := os.WriteFile(filepath.Join(dir, artifactFileName), []byte(code), domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write artifact")
	}

	for module, stub := range stubModules {
		modDir := filepath.Join(dir, "node_modules", filepath.FromSlash(module))
		if err := os.MkdirAll(modDir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create stub module"), "module", module)
		}
		if err := os.WriteFile(filepath.Join(modDir, "index.d.ts"), []byte(stub), domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write stub module"), "module", module)
		}
	}

	raw, err := json.MarshalIndent(c.tsconfig(), "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode tsconfig")
	}
	if err := os.WriteFile(filepath.Join(dir, "tsconfig.json"), raw, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write tsconfig")
	}
	return nil
}

type tsconfig struct {
	CompilerOptions compilerOptions `json:"compilerOptions"`
	Files           []string        `json:"files"`
}

type compilerOptions struct {
	Target                 string `json:"target"`
	Module                 string `json:"module"`
	ModuleResolution       string `json:"moduleResolution"`
	BaseURL                string `json:"baseUrl"`
	ExperimentalDecorators bool   `json:"experimentalDecorators"`
	EmitDecoratorMetadata  bool   `json:"emitDecoratorMetadata"`
	EsModuleInterop        bool   `json:"esModuleInterop"`
	NoEmit                 bool   `json:"noEmit"`
	SkipLibCheck           bool   `json:"skipLibCheck"`
	Strict                 bool   `json:"strict"`
}

func (c *Command) tsconfig() tsconfig {
	return tsconfig{
		CompilerOptions: compilerOptions{
			Target:                 "ES2020",
			Module:                 "commonjs",
			ModuleResolution:       "node",
			BaseURL:                ".",
			ExperimentalDecorators: true,
			EmitDecoratorMetadata:  true,
			EsModuleInterop:        true,
			NoEmit:                 true,
			SkipLibCheck:           true,
			Strict:                 c.strict,
		},
		Files: []string{artifactFileName},
	}
}

// parseDiagnostics extracts findings from raw compiler output, one per line.
// Lines that do not look like findings are dropped.
func parseDiagnostics(raw string) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, line := range strings.Split(raw, "\n") {
		m := diagnosticRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		lineNum, _ := strconv.Atoi(m[2])
		charNum, _ := strconv.Atoi(m[3])
		diags = append(diags, domain.Diagnostic{
			File:    strings.TrimSpace(m[1]),
			Line:    lineNum,
			Char:    charNum,
			Code:    m[4],
			Message: strings.TrimSpace(m[5]),
		})
	}
	return diags
}

func filterLenient(diags []domain.Diagnostic) []domain.Diagnostic {
	var kept []domain.Diagnostic
	for _, d := range diags {
		if _, ok := lenientCodes[d.Code]; ok {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

func truncateOutput(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxToolOutput {
		raw = raw[:maxToolOutput]
	}
	return raw
}
