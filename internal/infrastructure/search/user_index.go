package search

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/samber/oops"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// UserDocument is what gets indexed for a user; the password hash never leaves the store.
// Version is sent as the external document version, not stored in the source.
// A deleted user is kept as a tombstone so older writes still lose to it.
type UserDocument struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	Deleted   bool      `json:"deleted"`
	Version   int64     `json:"-"`
}

// UserIndex maintains the users search index.
type UserIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{ES: es, Index: index}
}

// DocumentFromEvent builds the indexed document from an account event.
// user.deleted yields a tombstone.
func DocumentFromEvent(ev entity.AccountEvent) UserDocument {
	if ev.Type == entity.EventUserDeleted {
		return UserDocument{ID: ev.UserID, Deleted: true, Version: ev.Version}
	}
	return UserDocument{ID: ev.UserID, Username: ev.Username, IsAdmin: ev.IsAdmin, CreatedAt: ev.CreatedAt, Version: ev.Version}
}

// Put writes doc with external versioning. A write whose version is not
// newer than the indexed one is rejected by Elasticsearch with 409 and
// dropped here as already superseded.
func (x *UserIndex) Put(ctx context.Context, doc UserDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	version := int(doc.Version)
	req := esapi.IndexRequest{
		Index:       x.Index,
		DocumentID:  strconv.FormatInt(doc.ID, 10),
		Body:        strings.NewReader(string(b)),
		Refresh:     "false",
		Version:     &version,
		VersionType: "external",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return oops.In("user_index").Code("ES_INDEX_FAILED").With("user_id", doc.ID).Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == http.StatusConflict {
		return nil
	}
	if res.IsError() {
		return oops.In("user_index").Code("ES_INDEX_FAILED").With("user_id", doc.ID).With("status", res.StatusCode).Errorf("index response %s", res.Status())
	}
	return nil
}

// Search runs a prefix-friendly match on username, skipping tombstones.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]UserDocument, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"type":   "bool_prefix",
						"fields": []string{"username"},
					},
				},
				"must_not": map[string]any{
					"term": map[string]any{"deleted": true},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, oops.In("user_index").Code("ES_SEARCH_FAILED").Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, oops.In("user_index").Code("ES_SEARCH_FAILED").With("status", res.StatusCode).Errorf("search response %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source UserDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, oops.In("user_index").Code("ES_SEARCH_DECODE").Wrap(err)
	}

	out := make([]UserDocument, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if h.Source.Deleted {
			continue
		}
		out = append(out, h.Source)
	}
	return out, nil
}
