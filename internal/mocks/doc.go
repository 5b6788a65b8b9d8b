// Package mocks provides shared test doubles for the word store, the user
// store, the token service and the database.
//
// Mocks use function fields: a nil field falls back to a default behaviour,
// usually an in-memory implementation, so tests only override what they
// assert on.
//
//	words := mocks.NewMockWordStore()
//	words.CountFn = func(ctx context.Context, userID uuid.UUID) (int, error) {
//	    return 0, errors.New("boom")
//	}
package mocks
