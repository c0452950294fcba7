package formatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/sectorgeo/level"
)

// Format rewrites every map file under path in canonical form. path may be a
// single file or a directory.
func Format(path string) error {
	fmt.Println("Formatting map files...")

	changed := 0
	err := eachMapFile(path, func(file string) error {
		original, formatted, err := canonical(file)
		if err != nil {
			return err
		}
		if bytes.Equal(original, formatted) {
			return nil
		}
		if err := os.WriteFile(file, formatted, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", file, err)
		}
		fmt.Println(file)
		changed++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("✅ Formatting completed (%d files changed)\n", changed)
	return nil
}

// Check reports map files under path that are not in canonical form without
// modifying them.
func Check(path string) error {
	fmt.Println("Checking map formatting...")

	var unformatted []string
	err := eachMapFile(path, func(file string) error {
		original, formatted, err := canonical(file)
		if err != nil {
			return err
		}
		if !bytes.Equal(original, formatted) {
			unformatted = append(unformatted, file)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(unformatted) > 0 {
		for _, file := range unformatted {
			fmt.Println(file)
		}
		return fmt.Errorf("format check failed: %d files are not formatted", len(unformatted))
	}

	fmt.Println("✅ Format check completed")
	return nil
}

// canonical returns the file content and its canonical encoding.
func canonical(file string) ([]byte, []byte, error) {
	original, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", file, err)
	}
	m, err := level.Load(file)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return nil, nil, fmt.Errorf("encoding %s: %w", file, err)
	}
	return original, buf.Bytes(), nil
}

// eachMapFile calls fn for path itself or, for a directory, for every .yaml
// file below it except project configuration.
func eachMapFile(path string, fn func(file string) error) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fn(path)
	}

	err = filepath.Walk(path, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(file, ".yaml") || info.Name() == "sectorgeo.yaml" {
			return nil
		}
		return fn(file)
	})
	if err != nil {
		return fmt.Errorf("walking directory %s: %w", path, err)
	}
	return nil
}
