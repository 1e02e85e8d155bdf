package planstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
	"strings"
	"sync"
)

// LatestPlanFile is the file name of the saved plan inside the output directory.
const LatestPlanFile = "latest_plan.json"

// FilePlanStore keeps the latest plan as JSON in a directory. Saves go through
// a temp file and a rename so readers never observe a partial write.
type FilePlanStore struct {
	Dir string

	mu sync.Mutex
}

func NewFilePlanStore(dir string) (*FilePlanStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("file plan store: dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file plan store: create %q: %w", dir, err)
	}
	return &FilePlanStore{Dir: dir}, nil
}

func (s *FilePlanStore) path() string { return filepath.Join(s.Dir, LatestPlanFile) }

func (s *FilePlanStore) SavePlan(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "planstore.file.SavePlan")(&err)

	b, err := encodePlan(plan)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.Dir, ".latest_plan-*.json")
	if err != nil {
		return fmt.Errorf("save plan: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("save plan: write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("save plan: close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path()); err != nil {
		return fmt.Errorf("save plan: rename into place: %w", err)
	}

	return nil
}

func (s *FilePlanStore) LatestPlan(ctx context.Context) (*domain.Plan, error) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest plan: read %q: %w", s.path(), err)
	}

	return decodePlan(b)
}
