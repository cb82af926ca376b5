package mongo

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uscl/transaction-tracker/internal/core/ports"
)

func lookupOne(from, localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
		}}},
		{{Key: "$unwind", Value: "$" + as}},
	}
}

func pageStages(page ports.PageRequest) []bson.D {
	return []bson.D{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: int64(page.Offset())}},
		{{Key: "$limit", Value: int64(page.Limit)}},
	}
}

// transactionPipeline pages transactions ordered by tracking ID and joins
// client and status names.
func transactionPipeline(match bson.D, page *ports.PageRequest) mongo.Pipeline {
	var p mongo.Pipeline
	if len(match) > 0 {
		p = append(p, bson.D{{Key: "$match", Value: match}})
	}
	if page != nil {
		p = append(p, pageStages(*page)...)
	}
	p = append(p, lookupOne(collClients, "client_id", "client")...)
	p = append(p, lookupOne(collStatuses, "status_id", "status")...)
	return p
}

// historyPipelines returns the page pipeline and the count pipeline for a
// filter. Both start from the same join and match stages so the count
// describes exactly the filtered set.
func historyPipelines(filter ports.HistoryFilter) (data, count mongo.Pipeline) {
	var prefix mongo.Pipeline
	prefix = append(prefix, lookupOne(collClients, "client_id", "client")...)
	if name := strings.TrimSpace(filter.ClientName); name != "" {
		prefix = append(prefix, bson.D{{Key: "$match", Value: bson.D{
			{Key: "client.client_name", Value: primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}},
		}}})
	}

	data = append(data, prefix...)
	data = append(data, pageStages(filter.Page)...)
	data = append(data, lookupOne(collStatuses, "status_id", "status")...)

	count = append(count, prefix...)
	count = append(count, bson.D{{Key: "$count", Value: "total"}})
	return data, count
}
