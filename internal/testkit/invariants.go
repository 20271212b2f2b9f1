package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"arithlex/internal/source"
	"arithlex/internal/token"
)

// CheckTokenInvariants runs the stream invariants every lexer output must hold:
// 1) exactly one EOF, last, with an empty span at the end of content
// 2) every other token has a non-empty span inside the file and Text == content[span]
// 3) spans are contiguous, so the texts rebuild the content byte for byte
// 4) Value is set only on Number tokens
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}

	var rebuilt strings.Builder
	var next uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if tok.Kind == token.EOF {
			if i != len(tokens)-1 {
				return fmt.Errorf("EOF at %d is not the last token (%d total)", i, len(tokens))
			}
			if sp.Start != lenContent || sp.End != lenContent || tok.Text != "" {
				return fmt.Errorf("EOF span %v text %q, want empty at %d", sp, tok.Text, lenContent)
			}
			continue
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d (%s) has empty span %v", i, tok.Kind, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start != next {
			return fmt.Errorf("token %d starts at %d, previous ended at %d", i, sp.Start, next)
		}
		if want := string(sf.Content[sp.Start:sp.End]); tok.Text != want {
			return fmt.Errorf("token %d text %q, content has %q", i, tok.Text, want)
		}
		if tok.Kind != token.Number && tok.Value != 0 {
			return fmt.Errorf("token %d (%s) carries value %d", i, tok.Kind, tok.Value)
		}
		next = sp.End
		rebuilt.WriteString(tok.Text)
	}

	if tokens[len(tokens)-1].Kind != token.EOF {
		return fmt.Errorf("stream does not end with EOF")
	}
	if rebuilt.String() != string(sf.Content) {
		return fmt.Errorf("token texts do not rebuild the content")
	}
	return nil
}
