package databases

import "go.mongodb.org/mongo-driver/mongo/options"

// findPageOpts translates a limit/page pair into mongo find options.
// Pages are 1-based; page 0 behaves like page 1.
func findPageOpts(limit, page int) *options.FindOptions {
	l := int64(limit)
	skip := int64(page-1) * l
	if skip < 0 {
		skip = 0
	}
	return &options.FindOptions{Limit: &l, Skip: &skip}
}
