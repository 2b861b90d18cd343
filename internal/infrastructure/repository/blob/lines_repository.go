package blob

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/spreadpool/against-the-spread/internal/domain/lines"
)

const linesFolder = "lines"

// LinesRepository stores weekly lines in Azure Blob Storage: the original
// workbook for audit re-download and the canonical JSON for fast reads, both
// under deterministic week/year keys. Writes overwrite unconditionally; there
// is no versioning and the last write wins.
type LinesRepository struct {
	client    *azblob.Client
	container string
}

func NewLinesRepository(connectionString, container string) (*LinesRepository, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "create blob client")
	}
	if strings.TrimSpace(container) == "" {
		return nil, crerr.New("blob container name cannot be empty")
	}

	return &LinesRepository{client: client, container: container}, nil
}

func (r *LinesRepository) Put(ctx context.Context, weekly lines.WeeklyLines, workbook []byte) error {
	if err := r.ensureContainer(ctx); err != nil {
		return err
	}

	payload, err := sonic.MarshalIndent(toWeeklyLinesBlob(weekly), "", "  ")
	if err != nil {
		return crerr.Wrap(err, "marshal weekly lines")
	}

	// The two objects are written without cross-object atomicity; readers
	// during an overwrite may observe either version.
	uploads := pool.New().WithErrors().WithContext(ctx)
	uploads.Go(func(ctx context.Context) error {
		_, err := r.client.UploadBuffer(ctx, r.container, workbookBlobName(weekly.Week, weekly.Year), workbook, nil)
		return crerr.Wrapf(err, "upload workbook week=%d year=%d", weekly.Week, weekly.Year)
	})
	uploads.Go(func(ctx context.Context) error {
		_, err := r.client.UploadBuffer(ctx, r.container, linesBlobName(weekly.Week, weekly.Year), payload, nil)
		return crerr.Wrapf(err, "upload lines json week=%d year=%d", weekly.Week, weekly.Year)
	})

	return uploads.Wait()
}

func (r *LinesRepository) Get(ctx context.Context, week, year int) (lines.WeeklyLines, bool, error) {
	payload, found, err := r.download(ctx, linesBlobName(week, year))
	if err != nil || !found {
		return lines.WeeklyLines{}, false, err
	}

	var stored weeklyLinesBlob
	if err := sonic.Unmarshal(payload, &stored); err != nil {
		return lines.WeeklyLines{}, false, crerr.Wrapf(err, "decode lines json week=%d year=%d", week, year)
	}

	return fromWeeklyLinesBlob(stored), true, nil
}

func (r *LinesRepository) GetWorkbook(ctx context.Context, week, year int) ([]byte, bool, error) {
	return r.download(ctx, workbookBlobName(week, year))
}

func (r *LinesRepository) ListWeeks(ctx context.Context, year int) ([]int, error) {
	prefix := linesFolder + "/week-"
	pager := r.client.NewListBlobsFlatPager(r.container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})

	seen := make(map[int]struct{})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if bloberror.HasCode(err, bloberror.ContainerNotFound) {
				return nil, nil
			}
			return nil, crerr.Wrapf(err, "list lines blobs year=%d", year)
		}
		for _, item := range page.Segment.BlobItems {
			if item == nil || item.Name == nil {
				continue
			}
			week, ok := weekFromBlobName(*item.Name, year)
			if !ok {
				continue
			}
			seen[week] = struct{}{}
		}
	}

	weeks := make([]int, 0, len(seen))
	for week := range seen {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	return weeks, nil
}

func (r *LinesRepository) download(ctx context.Context, name string) ([]byte, bool, error) {
	resp, err := r.client.DownloadStream(ctx, r.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "download blob %s", name)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, crerr.Wrapf(err, "read blob %s", name)
	}

	return payload, true, nil
}

func (r *LinesRepository) ensureContainer(ctx context.Context) error {
	_, err := r.client.CreateContainer(ctx, r.container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return crerr.Wrapf(err, "create container %s", r.container)
	}

	return nil
}

func workbookBlobName(week, year int) string {
	return fmt.Sprintf("%s/week-%d-%d.xlsx", linesFolder, week, year)
}

func linesBlobName(week, year int) string {
	return fmt.Sprintf("%s/week-%d-%d.json", linesFolder, week, year)
}

// weekFromBlobName extracts the week from names like "lines/week-1-2024.json":
// the name must carry the year's json suffix and the second hyphen-delimited
// segment must parse as an integer. Anything else is skipped, not fatal.
func weekFromBlobName(name string, year int) (int, bool) {
	if !strings.HasSuffix(name, fmt.Sprintf("-%d.json", year)) {
		return 0, false
	}

	parts := strings.Split(name, "-")
	if len(parts) < 2 {
		return 0, false
	}
	week, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}

	return week, true
}
