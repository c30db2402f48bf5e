package mongoevents

import (
	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/snapshot"
)

// eventDocument документ события в коллекции
type eventDocument struct {
	Type      string         `bson:"tipo"`
	Room      string         `bson:"sala"`
	Date      string         `bson:"fecha"` // YYYY-MM-DD, сортируется лексикографически
	Resources map[string]int `bson:"recursos"`
}

func toDocuments(events []*domain.Event) []interface{} {
	docs := make([]interface{}, 0, len(events))
	for _, record := range snapshot.FromDomain(events) {
		docs = append(docs, eventDocument{
			Type:      record.Type,
			Room:      record.Room,
			Date:      record.Date,
			Resources: record.Resources,
		})
	}
	return docs
}

func fromDocuments(docs []eventDocument) ([]*domain.Event, error) {
	records := make([]snapshot.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, snapshot.Record{
			Type:      doc.Type,
			Room:      doc.Room,
			Date:      doc.Date,
			Resources: doc.Resources,
		})
	}
	return snapshot.ToDomain(records)
}
