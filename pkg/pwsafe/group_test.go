package pwsafe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveTreeEmptyGroupAtRoot(t *testing.T) {
	r := newEmptyRecord()
	tree := DeriveTree([]*Record{r}, nil)
	require.Empty(t, tree.Roots())
	// The record has no group, so it's not attached to any node; it is
	// up to Database.Roots() to surface root records directly.
}

func TestDeriveTreeNestedPathMaterializesAllPrefixes(t *testing.T) {
	r := newEmptyRecord()
	r.SetGroup("A.B.C")
	tree := DeriveTree([]*Record{r}, nil)

	require.NotNil(t, tree.Node("A"))
	require.NotNil(t, tree.Node("A.B"))
	require.NotNil(t, tree.Node("A.B.C"))
	require.Equal(t, []string{"A"}, tree.Roots())
	require.Equal(t, []string{"A.B"}, tree.Subgroups("A"))
	require.Equal(t, []string{"A.B.C"}, tree.Subgroups("A.B"))
	require.Len(t, tree.DeepRecords("A"), 1)
}

func TestDeriveTreeEmptyPathSegmentsAreLiteral(t *testing.T) {
	r := newEmptyRecord()
	r.SetGroup("A..B")
	tree := DeriveTree([]*Record{r}, nil)

	require.NotNil(t, tree.Node("A"))
	require.NotNil(t, tree.Node("A."))
	require.NotNil(t, tree.Node("A..B"))
	require.Equal(t, []string{"A."}, tree.Subgroups("A"))
}

func TestDeriveTreeSyntheticGroupsSurviveWithNoRecords(t *testing.T) {
	tree := DeriveTree(nil, []string{"Work.Email"})

	require.Equal(t, []string{"Work"}, tree.Roots())
	require.Equal(t, []string{"Work.Email"}, tree.Subgroups("Work"))
	require.Empty(t, tree.Records("Work.Email"))
}
