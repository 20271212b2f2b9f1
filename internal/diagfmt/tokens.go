package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"arithlex/internal/source"
	"arithlex/internal/token"
)

// TokenOutput is the record written by the json and msgpack token formats.
type TokenOutput struct {
	Kind  string      `json:"kind" msgpack:"kind"`
	Text  string      `json:"text" msgpack:"text"`
	Value *int64      `json:"value,omitempty" msgpack:"value,omitempty"`
	Span  source.Span `json:"span" msgpack:"span"`
}

// SkipWhitespace returns tokens without Whitespace entries. The input slice
// is left untouched.
func SkipWhitespace(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsTrivia() {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// BuildTokenOutput converts tokens into their serialisable form, stopping at EOF.
func BuildTokenOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		rec := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if tok.IsNumber() {
			v := tok.Value
			rec.Value = &v
		}
		output = append(output, rec)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-10s %-8q at %d:%d-%d:%d",
			i+1, tok.Kind.String(), tok.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
		if tok.IsNumber() {
			if _, err := fmt.Fprintf(w, " = %d", tok.Value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokenOutput(tokens))
}

// FormatTokensMsgpack пишет те же записи, что и JSON, в MessagePack
func FormatTokensMsgpack(w io.Writer, tokens []token.Token) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(BuildTokenOutput(tokens)); err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	return nil
}
