// Package monitor exposes the service log to signed-in admins.
package monitor

import (
	"bufio"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultTailLines = 200
	maxTailLines     = 5000
)

// RegisterLogsRoute serves the last lines of the log file at logPath under
// group. The group is expected to carry the admin session check.
func RegisterLogsRoute(group *gin.RouterGroup, logPath func() string) {
	group.GET("/logs", func(c *gin.Context) {
		n, err := strconv.Atoi(c.DefaultQuery("lines", strconv.Itoa(defaultTailLines)))
		if err != nil || n <= 0 {
			n = defaultTailLines
		}
		if n > maxTailLines {
			n = maxTailLines
		}

		lines, err := tailFile(logPath(), n)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				c.String(http.StatusOK, "")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}

		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "text/plain; charset=utf-8", lines)
	})
}

// tailFile returns the last n lines of path.
func tailFile(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) == n {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var out []byte
	for _, line := range ring {
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out, nil
}
