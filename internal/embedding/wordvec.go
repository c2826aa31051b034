package embedding

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// WordVectors is an in-process embedding model loaded from a GloVe-format
// text file ("word v1 v2 ... vn" per line). A text embeds to the average of
// its known token vectors; unknown tokens contribute nothing, so an empty or
// fully out-of-vocabulary text yields a zero vector.
//
// The map is read-only after load and safe to share across requests.
type WordVectors struct {
	dim  int
	vecs map[string][]float32
}

// LoadWordVectors reads the whole vector file into memory. Called once at
// startup; any problem with the file means the process must not serve.
func LoadWordVectors(path string) (*WordVectors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word vectors: %w", err)
	}
	defer f.Close()

	m := &WordVectors{vecs: make(map[string][]float32)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		word := fields[0]
		vec := make([]float32, len(fields)-1)
		for i, fld := range fields[1:] {
			v, err := strconv.ParseFloat(fld, 32)
			if err != nil {
				return nil, fmt.Errorf("word vectors line %d: bad value %q: %w", line, fld, err)
			}
			vec[i] = float32(v)
		}
		if m.dim == 0 {
			m.dim = len(vec)
		} else if len(vec) != m.dim {
			return nil, fmt.Errorf("word vectors line %d: dimension %d, expected %d", line, len(vec), m.dim)
		}
		m.vecs[word] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word vectors: %w", err)
	}
	if len(m.vecs) == 0 {
		return nil, fmt.Errorf("word vectors file %s contains no vectors", path)
	}
	return m, nil
}

// Dimension returns the fixed vector length of the loaded model.
func (m *WordVectors) Dimension() int {
	return m.dim
}

// Embed averages the vectors of the text's known tokens.
func (m *WordVectors) Embed(_ context.Context, text string) ([]float32, error) {
	out := make([]float32, m.dim)
	known := 0
	for _, tok := range tokenize(text) {
		vec, ok := m.vecs[tok]
		if !ok {
			continue
		}
		for i, v := range vec {
			out[i] += v
		}
		known++
	}
	if known > 1 {
		inv := float32(1) / float32(known)
		for i := range out {
			out[i] *= inv
		}
	}
	return out, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
