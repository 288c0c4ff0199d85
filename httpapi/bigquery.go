package httpapi

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// BigQuerySource is the production WordSource: it queries the same
// admissible-word table the teacher's getWords queried, scoped by
// lexicon name instead of hardcoding one project's table.
type BigQuerySource struct {
	ProjectID string
	Table     string // fully-qualified, e.g. "xword-x.FirestoreQuery.all_words"
}

// NewBigQuerySource builds a BigQuerySource for the given project and table.
func NewBigQuerySource(projectID, table string) *BigQuerySource {
	return &BigQuerySource{ProjectID: projectID, Table: table}
}

// Words implements WordSource by running the same scope/obscure
// filtered SELECT the teacher's getWords ran, splitting rows into
// regular and obscure slices by the obscure column.
func (s *BigQuerySource) Words(ctx context.Context, scope string, includeObscure bool) (regular, obscure []string, err error) {
	client, err := bigquery.NewClient(ctx, s.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	obscureValues := []string{"false"}
	if includeObscure {
		obscureValues = append(obscureValues, "true")
	}
	query := fmt.Sprintf(
		"SELECT word_key, obscure FROM `%s` WHERE scope = %q AND obscure IN (%s)",
		s.Table, scope, strings.Join(obscureValues, ","),
	)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("job.Read: %w", err)
	}

	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("it.Next: %w", err)
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		isObscure, ok := row[1].(bool)
		if !ok {
			return nil, nil, fmt.Errorf("row[1] is not a bool: %v", row[1])
		}
		if isObscure {
			obscure = append(obscure, word)
		} else {
			regular = append(regular, word)
		}
	}
	return regular, obscure, nil
}
