package analysis

import (
	"sort"

	"channelscope/internal/models"
)

// TagStat aggregates view performance for one tag across the videos
// that carry it.
type TagStat struct {
	Tag      string  `json:"tag"`
	Count    int     `json:"count"`
	AvgViews float64 `json:"avgViews"`
}

// minTagUses is the support threshold below which a tag is dropped:
// a tag on a single video says more about that video than the tag.
const minTagUses = 2

// analyzeTags accumulates usage count and summed views per tag and
// returns tags used at least twice, sorted by average views descending.
// Ties keep first-encountered order.
func analyzeTags(videos []models.Video) []TagStat {
	uses := make(map[string]int)
	views := make(map[string]int64)
	var order []string

	for _, video := range videos {
		for _, tag := range video.Tags {
			if _, seen := uses[tag]; !seen {
				order = append(order, tag)
			}
			uses[tag]++
			views[tag] += video.Views
		}
	}

	result := make([]TagStat, 0, len(order))
	for _, tag := range order {
		if uses[tag] < minTagUses {
			continue
		}
		result = append(result, TagStat{
			Tag:      tag,
			Count:    uses[tag],
			AvgViews: float64(views[tag]) / float64(uses[tag]),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgViews > result[j].AvgViews
	})
	return result
}
