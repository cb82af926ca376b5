package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/uscl/transaction-tracker/internal/core/ports"
)

func stageNames(p []bson.D) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestHistoryPipelines_NoFilter(t *testing.T) {
	data, count := historyPipelines(ports.HistoryFilter{Page: ports.NewPageRequest(1, 10)})

	assert.Equal(t, []string{"$lookup", "$unwind", "$sort", "$skip", "$limit", "$lookup", "$unwind"}, stageNames(data))
	assert.Equal(t, []string{"$lookup", "$unwind", "$count"}, stageNames(count))
}

func TestHistoryPipelines_FilterAppliedToBoth(t *testing.T) {
	data, count := historyPipelines(ports.HistoryFilter{ClientName: "a.c+me", Page: ports.NewPageRequest(3, 5)})

	require.Equal(t, "$match", data[2][0].Key)
	require.Equal(t, "$match", count[2][0].Key)
	assert.Equal(t, data[2], count[2])

	match := data[2][0].Value.(bson.D)
	re := match[0].Value.(primitive.Regex)
	assert.Equal(t, `a\.c\+me`, re.Pattern)
	assert.Equal(t, "i", re.Options)

	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(10)}}, data[4])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(5)}}, data[5])
}

func TestTransactionPipeline(t *testing.T) {
	page := ports.NewPageRequest(2, 10)
	p := transactionPipeline(nil, &page)
	assert.Equal(t, []string{"$sort", "$skip", "$limit", "$lookup", "$unwind", "$lookup", "$unwind"}, stageNames(p))

	p = transactionPipeline(bson.D{{Key: "_id", Value: "TRX-1-ABCDEF"}}, nil)
	assert.Equal(t, []string{"$match", "$lookup", "$unwind", "$lookup", "$unwind"}, stageNames(p))
}
