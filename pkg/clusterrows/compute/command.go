// Package compute runs the clustering routine outside the process.
//
// The routine is any executable that reads one JSON request on stdin and
// writes a JSON array of {"label", "confidence"} objects on stdout.
package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"golang.org/x/sync/errgroup"
)

var _ clusterrows.Clusterer = (*Command)(nil)

// Request is the wire form of a clustering request. Cells without a number
// are sent as null.
type Request struct {
	Data          []*float64 `json:"data"`
	Rows          int        `json:"rows"`
	Cols          int        `json:"cols"`
	NumClusters   int        `json:"num_clusters"`
	NumEpochs     int        `json:"num_epochs"`
	NumIterations int        `json:"num_iterations"`
}

// NewRequest converts a clustering request to its wire form.
func NewRequest(req models.ClusterRequest) Request {
	data := make([]*float64, len(req.Data))
	for i, v := range req.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		v := v
		data[i] = &v
	}
	return Request{
		Data:          data,
		Rows:          req.Rows,
		Cols:          req.Cols,
		NumClusters:   req.NumClusters,
		NumEpochs:     req.NumEpochs,
		NumIterations: req.NumIterations,
	}
}

// Command runs an external clustering executable.
type Command struct {
	Path string
	Args []string
	// Env is added to the parent environment.
	Env    []string
	Logger *slog.Logger
}

// Cluster runs the command with req on stdin and decodes its stdout.
func (c *Command) Cluster(ctx context.Context, req models.ClusterRequest) ([]models.Assignment, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", c.Path, err)
	}
	logger.Debug("clusterer started", "path", c.Path, "rows", req.Rows, "cols", req.Cols)

	var assignments []models.Assignment
	g := new(errgroup.Group)
	g.Go(func() error {
		defer stdin.Close()
		return json.NewEncoder(stdin).Encode(NewRequest(req))
	})
	g.Go(func() error {
		var err error
		assignments, err = DecodeAssignments(stdout)
		// Drain so the child never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, stdout)
		return err
	})
	ioErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		logger.Error("clusterer failed", "path", c.Path, "error", err, "stderr", msg)
		if msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", c.Path, err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", c.Path, err)
	}
	if ioErr != nil {
		return nil, fmt.Errorf("exchange with %s: %w", c.Path, ioErr)
	}
	return assignments, nil
}

// DecodeAssignments reads a JSON array of assignments.
func DecodeAssignments(r io.Reader) ([]models.Assignment, error) {
	var out []models.Assignment
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return out, nil
}
