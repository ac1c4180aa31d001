package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса

var inlineSeeds = []string{
	"",
	"Id = x => x;\n",
	"K = (x, y) => x;\nS = (x, y, z) => x z (y z);\n",
	"use {Zero, Suc} from \"./nat\";\nTwo = Suc (Suc Zero);\n",
	"Omega = (x => x x) (x => x x);",
	"(a, b) => b a",
	"Id = x => x y )) ;",
	"\"unterminated\n= =>(,,)) {{ }} ;;",
	"A = => ; B = (x,) => ; c = D;",
	"τ = λx.x;",
	"() => x",
	"use {} from ;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.lc файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lc" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
