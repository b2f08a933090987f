package checker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

// writeFakeTool writes an executable shell script standing in for the
// compiler. Scripts run with the workspace as working directory and receive
// the project flags as arguments.
func writeFakeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-tsc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

const findingsScript = `cat <<'EOF'
artifact.ts(3,7): error TS1005: ';' expected.
artifact.ts(5,1): error TS2307: Cannot find module '@untyped/http'.
artifact.ts(9,3): error TS2305: Module '"rxjs"' has no exported member 'zip'.
EOF
exit 2
`

func TestCommand_CleanRun(t *testing.T) {
	tool := writeFakeTool(t, "exit 0\n")
	checker := NewCommand(tool, false)

	diags, err := checker.Check(context.Background(), "export class Cart {}", "", nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCommand_ParsesFindings(t *testing.T) {
	tool := writeFakeTool(t, findingsScript)
	checker := NewCommand(tool, true)

	diags, err := checker.Check(context.Background(), "bad code", "", nil)
	require.NoError(t, err)
	require.Len(t, diags, 3)

	assert.Equal(t, "artifact.ts", diags[0].File)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, 7, diags[0].Char)
	assert.Equal(t, "TS1005", diags[0].Code)
	assert.Equal(t, "';' expected.", diags[0].Message)
	assert.Equal(t, "TS2307", diags[1].Code)
	assert.Equal(t, "TS2305", diags[2].Code)
}

func TestCommand_LenientFiltersModuleFindings(t *testing.T) {
	tool := writeFakeTool(t, findingsScript)
	checker := NewCommand(tool, false)

	diags, err := checker.Check(context.Background(), "bad code", "", nil)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "TS1005", diags[0].Code)
}

func TestCommand_LenientAllFilteredIsClean(t *testing.T) {
	tool := writeFakeTool(t, `cat <<'EOF'
artifact.ts(1,1): error TS2307: Cannot find module 'rxjs/operators'.
artifact.ts(4,12): error TS2339: Property 'pipe' does not exist on type 'unknown'.
EOF
exit 2
`)
	checker := NewCommand(tool, false)

	// Every finding falls under the lenient codes; the non-zero exit alone
	// does not fail the artifact.
	diags, err := checker.Check(context.Background(), "export class Cart {}", "", nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCommand_SemanticExpectations(t *testing.T) {
	tool := writeFakeTool(t, "exit 0\n")
	checker := NewCommand(tool, false)
	narrative := "Render a component named Cart with a method addItem for new entries."

	t.Run("Missing", func(t *testing.T) {
		diags, err := checker.Check(context.Background(), "export class Basket {}", narrative, nil)
		require.NoError(t, err)
		require.Len(t, diags, 2)

		assert.Equal(t, "Expected class 'Cart' not found in code", diags[0].Message)
		assert.Equal(t, "Expected method 'addItem' not found in code", diags[1].Message)
		assert.Equal(t, "artifact.ts", diags[0].File)
		assert.Equal(t, 1, diags[0].Line)
		assert.Empty(t, diags[0].Code)
	})

	t.Run("Met", func(t *testing.T) {
		code := "export class Cart {\n  addItem(item: string): void {}\n}"
		diags, err := checker.Check(context.Background(), code, narrative, nil)
		require.NoError(t, err)
		assert.Empty(t, diags)
	})
}

func TestCommand_FindingsSkipSemanticChecks(t *testing.T) {
	tool := writeFakeTool(t, `echo "artifact.ts(2,1): error TS1005: ';' expected."
exit 2
`)
	checker := NewCommand(tool, false)

	diags, err := checker.Check(context.Background(), "bad code", "a component named Ghost", nil)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "TS1005", diags[0].Code)
}

func TestCommand_StreamsOutput(t *testing.T) {
	tool := writeFakeTool(t, `echo "checking artifact.ts"
echo "artifact.ts(2,1): error TS1005: ';' expected."
exit 2
`)
	checker := NewCommand(tool, false)

	var output bytes.Buffer
	diags, err := checker.Check(context.Background(), "bad code", "", &output)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Contains(t, output.String(), "checking artifact.ts")
	assert.Contains(t, output.String(), "error TS1005")
}

func TestCommand_WorkspaceLayout(t *testing.T) {
	tool := writeFakeTool(t, "find . -type f | sort\ncat artifact.ts\nexit 0\n")
	checker := NewCommand(tool, false)

	var output bytes.Buffer
	_, err := checker.Check(context.Background(), "export class Cart {}", "", &output)
	require.NoError(t, err)

	listing := output.String()
	assert.Contains(t, listing, "./artifact.ts")
	assert.Contains(t, listing, "./tsconfig.json")
	assert.Contains(t, listing, "./node_modules/@angular/core/index.d.ts")
	assert.Contains(t, listing, "./node_modules/@angular/forms/index.d.ts")
	assert.Contains(t, listing, "./node_modules/@angular/router/index.d.ts")
	assert.Contains(t, listing, "./node_modules/rxjs/index.d.ts")
	assert.Contains(t, listing, "export class Cart {}")
}

func TestCommand_TsconfigStrictness(t *testing.T) {
	tool := writeFakeTool(t, "cat tsconfig.json\nexit 0\n")

	t.Run("Strict", func(t *testing.T) {
		var output bytes.Buffer
		_, err := NewCommand(tool, true).Check(context.Background(), "code", "", &output)
		require.NoError(t, err)
		assert.Contains(t, output.String(), `"strict": true`)
		assert.Contains(t, output.String(), `"noEmit": true`)
		assert.Contains(t, output.String(), `"experimentalDecorators": true`)
	})

	t.Run("Lenient", func(t *testing.T) {
		var output bytes.Buffer
		_, err := NewCommand(tool, false).Check(context.Background(), "code", "", &output)
		require.NoError(t, err)
		assert.Contains(t, output.String(), `"strict": false`)
	})
}

func TestCommand_CommandArguments(t *testing.T) {
	tool := writeFakeTool(t, "echo \"$@\"\nexit 0\n")
	checker := NewCommand(tool+" --pretty false", false)

	var output bytes.Buffer
	_, err := checker.Check(context.Background(), "code", "", &output)
	require.NoError(t, err)
	assert.Contains(t, output.String(), "--pretty false -p tsconfig.json")
}

func TestCommand_ToolMissing(t *testing.T) {
	checker := NewCommand("snc-missing-checker-tool", false)

	diags, err := checker.Check(context.Background(), "code", "", nil)
	require.ErrorContains(t, err, "failed to run checker tool")
	assert.Nil(t, diags)
}

func TestCommand_ToolFailureWithoutFindings(t *testing.T) {
	tool := writeFakeTool(t, "echo \"something broke\"\nexit 1\n")
	checker := NewCommand(tool, false)

	diags, err := checker.Check(context.Background(), "code", "", nil)
	require.ErrorContains(t, err, "checker tool failed without reporting findings")
	assert.Nil(t, diags)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	meta := zErr.Metadata()
	exitCode, ok := meta["exit_code"].(int)
	require.True(t, ok)
	assert.Equal(t, 1, exitCode)
	out, ok := meta["output"].(string)
	require.True(t, ok)
	assert.Contains(t, out, "something broke")
}

func TestCommand_Canceled(t *testing.T) {
	tool := writeFakeTool(t, "exec sleep 5\n")
	checker := NewCommand(tool, false)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := checker.Check(ctx, "code", "", nil)
	require.ErrorContains(t, err, "checker interrupted")
}

func TestParseDiagnostics(t *testing.T) {
	raw := `Starting compilation...
artifact.ts(3,7): error TS1005: ';' expected.
artifact.ts(10,5): warning TS6133: 'item' is declared but its value is never read.
node_modules/rxjs/index.d.ts(4,1): error TS1183: An implementation cannot be declared in ambient contexts.
Found 2 errors in the same file, starting at: artifact.ts:3

`
	diags := parseDiagnostics(raw)
	require.Len(t, diags, 2)
	assert.Equal(t, "artifact.ts", diags[0].File)
	assert.Equal(t, "TS1005", diags[0].Code)
	assert.Equal(t, "node_modules/rxjs/index.d.ts", diags[1].File)
	assert.Equal(t, 4, diags[1].Line)
	assert.Equal(t, 1, diags[1].Char)
}

func TestFilterLenient(t *testing.T) {
	diags := []domain.Diagnostic{
		{Code: "TS1005"},
		{Code: "TS2307"},
		{Code: "TS2305"},
		{Code: "TS2339"},
		{Code: "TS2322"},
	}

	kept := filterLenient(diags)
	require.Len(t, kept, 2)
	assert.Equal(t, "TS1005", kept[0].Code)
	assert.Equal(t, "TS2322", kept[1].Code)
}
