//go:generate go run .. static --pkg words --name Words --root internal/words -o internal/words/words_lines.go words.txt
//go:generate go run .. generate internal/words/manifest.yaml

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/growler/go-includelines/example/internal/words"
)

var (
	upper bool
	count bool
)

func init() {
	flag.BoolVar(&upper, "upper", false, "print the words in upper case")
	flag.BoolVar(&count, "count", false, "print only the number of words")
}

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		os.Exit(1)
	}
	if count {
		fmt.Println(words.WordsLen)
		return
	}
	for i, w := range words.Words {
		if upper {
			w = strings.ToUpper(string(words.Shouted[i]))
		}
		fmt.Println(w)
	}
}
