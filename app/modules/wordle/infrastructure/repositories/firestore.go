package wordledb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollection holds one document per result, keyed by documentID.
const DefaultCollection = "results"

// firestoreResult is the document shape stored in the results collection.
type firestoreResult struct {
	Puzzle      int       `firestore:"puzzle"`
	Player      string    `firestore:"player"`
	Score       int       `firestore:"score"`
	MaxTries    int       `firestore:"max_tries"`
	Date        string    `firestore:"date"`
	Month       string    `firestore:"month"`
	Year        int       `firestore:"year"`
	SubmittedAt time.Time `firestore:"submitted_at"`
}

// FirestoreRepository stores results as documents. The document id doubles as the
// uniqueness constraint: Create fails when the document already exists.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

var _ Repository = (*FirestoreRepository)(nil)

// OpenFirestore connects to projectID. When FIRESTORE_EMULATOR_HOST is set the client
// talks to the emulator instead.
func OpenFirestore(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("wordledb.OpenFirestore: %w", err)
	}
	return client, nil
}

func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &FirestoreRepository{client: client, collection: collection}
}

func (r *FirestoreRepository) doc(puzzle int, player string) *firestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(documentID(puzzle, player))
}

// documentID is "{puzzle}_{escaped player}". Escaping keeps "/" out of the id, and the
// numeric prefix means "." or ".." can never be the whole id. Queries use the raw
// player field, never the id.
func documentID(puzzle int, player string) string {
	return strconv.Itoa(puzzle) + "_" + url.PathEscape(player)
}

func (r *FirestoreRepository) Exists(ctx context.Context, puzzle int, player string) (bool, error) {
	snap, err := r.doc(puzzle, player).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("wordledb.Exists: %w", err)
	}
	return snap.Exists(), nil
}

func (r *FirestoreRepository) Get(ctx context.Context, puzzle int, player string) (*wordledomain.Result, error) {
	snap, err := r.doc(puzzle, player).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("wordledb.Get: %w", err)
	}
	result, err := decodeSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("wordledb.Get: %w", err)
	}
	return &result, nil
}

func (r *FirestoreRepository) Insert(ctx context.Context, result *wordledomain.Result) error {
	if result.SubmittedAt.IsZero() {
		result.SubmittedAt = time.Now().UTC()
	}
	doc := firestoreResult{
		Puzzle:      result.Puzzle,
		Player:      result.Player,
		Score:       result.Score,
		MaxTries:    result.MaxTries,
		Date:        result.DateString(),
		Month:       result.Month,
		Year:        result.Year,
		SubmittedAt: result.SubmittedAt.UTC(),
	}
	if _, err := r.doc(result.Puzzle, result.Player).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrDuplicate
		}
		return fmt.Errorf("wordledb.Insert: %w", err)
	}
	return nil
}

func (r *FirestoreRepository) ByPuzzle(ctx context.Context, puzzle int) ([]wordledomain.Result, error) {
	q := r.client.Collection(r.collection).Where("puzzle", "==", puzzle)
	results, err := collect(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("wordledb.ByPuzzle: %w", err)
	}
	// Firestore has no insertion order; submitted_at stands in for it.
	slices.SortStableFunc(results, func(a, b wordledomain.Result) int {
		if a.Score != b.Score {
			return a.Score - b.Score
		}
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})
	return results, nil
}

func (r *FirestoreRepository) ByMonth(ctx context.Context, month time.Month, year int) ([]wordledomain.Result, error) {
	q := r.client.Collection(r.collection).
		Where("month", "==", month.String()).
		Where("year", "==", year)
	results, err := collect(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("wordledb.ByMonth: %w", err)
	}
	slices.SortStableFunc(results, func(a, b wordledomain.Result) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})
	return results, nil
}

func (r *FirestoreRepository) Close() error {
	return r.client.Close()
}

func collect(ctx context.Context, q firestore.Query) ([]wordledomain.Result, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []wordledomain.Result
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		result, err := decodeSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

func decodeSnapshot(snap *firestore.DocumentSnapshot) (wordledomain.Result, error) {
	var doc firestoreResult
	if err := snap.DataTo(&doc); err != nil {
		return wordledomain.Result{}, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
	}
	date, err := wordledomain.ParseDate(doc.Date)
	if err != nil {
		return wordledomain.Result{}, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
	}
	return wordledomain.Result{
		Puzzle:      doc.Puzzle,
		Player:      doc.Player,
		Score:       doc.Score,
		MaxTries:    doc.MaxTries,
		Date:        date,
		Month:       doc.Month,
		Year:        doc.Year,
		SubmittedAt: doc.SubmittedAt,
	}, nil
}
