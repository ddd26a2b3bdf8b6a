// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tabletop/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"ASC", "DESC"}, slice.Map([]string{"asc", "desc"}, strings.ToUpper))
	assert.Equal(t, []int{}, slice.Map([]string{}, func(string) int { return 0 }))
	assert.Nil(t, slice.Map[string, int](nil, func(string) int { return 0 }))
}
