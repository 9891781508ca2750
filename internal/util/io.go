package util

import (
	"bufio"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"time"
)

// ReadSource reads source code from file or stdin.
// If the Options structure holds a string for source the file will be opened and read.
// Else the function waits for a short period for input on stdin. If no input on stdin is
// provided the function returns an error.
func ReadSource(opt Options) (string, error) {
	if len(opt.Src) > 0 {
		// Read from file.
		b, err := ioutil.ReadFile(opt.Src)
		return string(b), err
	}

	// Read stdin.
	c := make(chan string)
	cerr := make(chan error)

	// Concurrently wait for input on stdin.
	go func(c chan string, cerr chan error) {
		defer close(c)
		defer close(cerr)
		reader := bufio.NewReader(os.Stdin)
		text, err := reader.ReadString(0)
		if err == nil || (err == io.EOF && len(text) > 0) {
			c <- text
		} else {
			cerr <- err
		}
	}(c, cerr)

	// Select between input from stdin or timer expiry.
	select {
	case <-time.After(500 * time.Millisecond):
		return "", errors.New("expected input from stdin, got none")
	case s := <-c:
		return s, nil
	}
}
