package chunker

import "strings"

// Split breaks text into overlapping word windows. Each chunk holds at
// most window words and consecutive chunks share overlap words, so a
// sentence cut at a boundary still appears whole in one of them.
func Split(text string, window, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := window - overlap
	if step <= 0 {
		step = window
	}

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + window
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
