package httputil_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bipartisan-index/bipartisan/pkg/httputil"
)

func ExampleCache() {
	dir := filepath.Join(os.TempDir(), "bipartisan-example")
	cache, err := httputil.NewCache(dir, 24*time.Hour)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer os.RemoveAll(dir)

	pages := cache.Namespace("page:")
	if err := pages.Set("https://www.thelugarcenter.org/ourwork-85.html", "<table></table>"); err != nil {
		fmt.Println("Error:", err)
		return
	}

	var body string
	if ok, err := pages.Get("https://www.thelugarcenter.org/ourwork-85.html", &body); ok && err == nil {
		fmt.Println("Body:", body)
	}
	// Output:
	// Body: <table></table>
}

func ExampleCache_miss() {
	dir := filepath.Join(os.TempDir(), "bipartisan-example-miss")
	cache, _ := httputil.NewCache(dir, time.Hour)
	defer os.RemoveAll(dir)

	var result string
	ok, err := cache.Get("nonexistent", &result)
	fmt.Println("Found:", ok)
	fmt.Println("Error:", err)
	// Output:
	// Found: false
	// Error: <nil>
}
