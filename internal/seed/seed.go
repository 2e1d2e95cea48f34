package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/resourcehub/internal/app/models/dto"
	appServices "github.com/yigit/resourcehub/internal/app/services"
	"github.com/yigit/resourcehub/internal/domain"
)

// demoResources are video-only so they need no uploaded files.
var demoResources = []domain.Draft{
	{
		University: "RGPV",
		Branch:     "CS",
		Semester:   "3rd Semester",
		Subject:    "Data Structures",
		Selected:   domain.NewKindSet(domain.KindVideo),
		Video: domain.VideoDraft{
			Title:       "Linked Lists in 20 Minutes",
			Description: "Singly and doubly linked lists with insertion and deletion walkthroughs.",
			URL:         "https://www.youtube.com/watch?v=R9PTBwOzceo",
		},
	},
	{
		University: "DAVV",
		Branch:     "IT",
		Semester:   "5th Semester",
		Subject:    "Operating Systems",
		Selected:   domain.NewKindSet(domain.KindVideo),
		Video: domain.VideoDraft{
			Title:       "CPU Scheduling Algorithms",
			Description: "FCFS, SJF, priority and round robin scheduling with worked examples.",
			URL:         "https://www.youtube.com/watch?v=EWkQl0n0w5M",
		},
	},
}

// CreateDemoData inserts a few sample resources when the table is empty.
func CreateDemoData(ctx context.Context, svc appServices.ResourceService, lgr zerolog.Logger) error {
	existing, err := svc.ListResources(ctx, &dto.ResourceFilterRequest{Page: 1, Size: 1})
	if err != nil {
		return err
	}
	if existing.Pagination.TotalItems > 0 {
		lgr.Info().Int64("resources", existing.Pagination.TotalItems).Msg("Resources present, skipping demo data")
		return nil
	}

	lgr.Info().Int("count", len(demoResources)).Msg("Creating demo resources...")
	var finalErr error
	for i := range demoResources {
		d := demoResources[i]
		if _, err := svc.CreateResource(ctx, &d); err != nil {
			lgr.Error().Err(err).Str("title", d.Video.Title).Msg("Error creating demo resource")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}
