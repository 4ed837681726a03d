package api

import (
	"encoding/json"
	"fmt"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// listResult is the uniform decoded shape of any list endpoint.
type listResult[T any] = model.ResourceList[T]

// envelope is the wrapped list response shape: payload under "data"
// with optional pagination metadata.
type envelope[T any] struct {
	Data []T             `json:"data"`
	Meta *model.PageMeta `json:"meta"`
}

// decodeList decodes a list response that is either a bare JSON array
// or a {data, meta} envelope. The shape is discriminated once here, on
// the first non-space byte, instead of ad hoc checks at every call
// site. A bare array reports its own length as the total count.
func decodeList[T any](body []byte) (listResult[T], error) {
	var out listResult[T]

	switch firstByte(body) {
	case '[':
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return out, fmt.Errorf("decoding list response: %w", err)
		}
		out.Items = items
		out.TotalCount = len(items)
		return out, nil

	case '{':
		var env envelope[T]
		if err := json.Unmarshal(body, &env); err != nil {
			return out, fmt.Errorf("decoding envelope response: %w", err)
		}
		out.Items = env.Data
		out.TotalCount = len(env.Data)
		if env.Meta != nil {
			out.Meta = *env.Meta
			if env.Meta.Total > 0 {
				out.TotalCount = env.Meta.Total
			}
		}
		return out, nil

	default:
		return out, fmt.Errorf("unexpected list response shape: %q", truncate(body, 40))
	}
}

// firstByte returns the first non-whitespace byte of b, or 0.
func firstByte(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return c
		}
	}
	return 0
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
