package gql

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
)

// Глобальные ID и курсоры в том же base64-формате, что у graphql-relay,
// чтобы relay-клиент их понимал без изменений

const cursorPrefix = "arrayconnection:"

var errBadGlobalID = errors.New("bad global id")

func toGlobalID(kind string, id int64) graphql.ID {
	raw := fmt.Sprintf("%s:%d", kind, id)
	return graphql.ID(base64.StdEncoding.EncodeToString([]byte(raw)))
}

func fromGlobalID(gid graphql.ID) (string, int64, error) {
	raw, err := base64.StdEncoding.DecodeString(string(gid))
	if err != nil {
		return "", 0, errBadGlobalID
	}
	kind, rest, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", 0, errBadGlobalID
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return "", 0, errBadGlobalID
	}
	return kind, id, nil
}

func offsetCursor(offset int) string {
	raw := cursorPrefix + strconv.Itoa(offset)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func cursorOffset(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, err
	}
	rest, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("bad cursor %q", cursor)
	}
	return strconv.Atoi(rest)
}

// Status без указателя: у аргумента есть default в схеме,
// и packer graph-gophers не умеет класть default в *string
type connectionArgs struct {
	Status string
	After  *string
	Before *string
	First  *int32
	Last   *int32
}

// sliceWindow вычисляет окно [start, end) по правилам relay arrayconnection.
// Непонятные курсоры игнорируются, как в graphql-relay.
func sliceWindow(n int, args connectionArgs) (start, end int, hasPrev, hasNext bool, err error) {
	start, end = 0, n

	if args.After != nil {
		if off, cerr := cursorOffset(*args.After); cerr == nil && off >= 0 {
			start = min(off+1, n)
		}
	}
	if args.Before != nil {
		if off, cerr := cursorOffset(*args.Before); cerr == nil && off >= 0 {
			end = max(min(off, n), start)
		}
	}

	if args.First != nil {
		if *args.First < 0 {
			return 0, 0, false, false, errors.New("first must be non-negative")
		}
		if end-start > int(*args.First) {
			end = start + int(*args.First)
			hasNext = true
		}
	}
	if args.Last != nil {
		if *args.Last < 0 {
			return 0, 0, false, false, errors.New("last must be non-negative")
		}
		if end-start > int(*args.Last) {
			start = end - int(*args.Last)
			hasPrev = true
		}
	}

	return start, end, hasPrev, hasNext, nil
}
