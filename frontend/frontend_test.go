package frontend_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/smallos-lang/frontend"
	"github.com/metaphox/smallos-lang/lexer"
	"github.com/metaphox/smallos-lang/parser"
)

// recorder collects log records for inspection.
type recorder struct {
	mu      sync.Mutex
	records []*log.Record
}

func (r *recorder) logger() log.Logger {
	l := log.New()
	l.SetHandler(log.FuncHandler(func(rec *log.Record) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.records = append(r.records, rec)
		return nil
	}))
	return l
}

// find returns the context of the first record with msg.
func (r *recorder) find(msg string) (map[string]any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Msg != msg {
			continue
		}
		ctx := make(map[string]any)
		for i := 0; i+1 < len(rec.Ctx); i += 2 {
			ctx[rec.Ctx[i].(string)] = rec.Ctx[i+1]
		}
		return ctx, true
	}
	return nil, false
}

func TestFrontend_Parse(t *testing.T) {
	rec := &recorder{}
	fe := frontend.New(frontend.WithLogger(rec.logger()))

	prog, err := fe.Parse("x := 3 + 4.\n^x.\ny.")
	require.NoError(t, err)
	assert.Len(t, prog.Statements, 3)

	ctx, ok := rec.find("Tokenized source")
	require.True(t, ok)
	assert.Equal(t, 12, ctx["tokens"])

	ctx, ok = rec.find("Parsed program")
	require.True(t, ok)
	assert.Equal(t, 3, ctx["statements"])
	assert.Equal(t, 10, ctx["nodes"])
}

func TestFrontend_Trim(t *testing.T) {
	src := "[^1. 2.]. ^3. 4."

	prog, err := frontend.New(frontend.WithLogger(log.New()), frontend.WithTrim(true)).Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "[^1. 2.].\n^3.\n", prog.String())

	prog, err = frontend.New(frontend.WithLogger(log.New()), frontend.WithTrim(true), frontend.WithDeepTrim(true)).Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "[^1.].\n^3.\n", prog.String())
}

func TestFrontend_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantKind any
	}{
		{"lexical", "a.\nb := $.", 2, &lexer.LexicalError{}},
		{"syntax", "trait T is\n\n  var x.\nend", 3, &parser.SyntaxError{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			_, err := frontend.New(frontend.WithLogger(rec.logger())).Parse(tc.src)
			require.Error(t, err)

			switch tc.wantKind.(type) {
			case *lexer.LexicalError:
				var le *lexer.LexicalError
				assert.True(t, errors.As(err, &le))
			case *parser.SyntaxError:
				var se *parser.SyntaxError
				assert.True(t, errors.As(err, &se))
			}
			assert.Equal(t, tc.wantLine, frontend.Line(err))

			_, lexFailed := rec.find("Tokenizing failed")
			_, parseFailed := rec.find("Parsing failed")
			assert.True(t, lexFailed || parseFailed, "failure was not logged")
		})
	}
}

func TestLine_OtherErrors(t *testing.T) {
	assert.Zero(t, frontend.Line(errors.New("boom")))
	assert.Zero(t, frontend.Line(nil))
}

// TestFrontend_Concurrent runs independent parses on one Frontend.
func TestFrontend_Concurrent(t *testing.T) {
	fe := frontend.New(frontend.WithLogger(log.New()))

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fe.Parse("class A is def f as ^self g: 1 h: 2. end end\nA new f.")
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
