package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Sizes(t *testing.T) {
	ds := Default()
	assert.Len(t, ds.Internships, 5)
	assert.Len(t, ds.Logbook, 4)
	assert.Len(t, ds.Notifications, 4)
	assert.Len(t, ds.Students, 7)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()

	a.Internships[0].Skills[0] = "COBOL"
	a.Students[1].Status = "Placed"

	assert.Equal(t, "React", b.Internships[0].Skills[0])
	assert.Equal(t, "Seeking", string(b.Students[1].Status))
}

func TestDefault_UniqueIDs(t *testing.T) {
	ds := Default()
	seen := map[string]bool{}
	for _, i := range ds.Internships {
		require.False(t, seen[i.ID], "duplicate internship id %s", i.ID)
		seen[i.ID] = true
	}
	for _, s := range ds.Students {
		require.False(t, seen[s.ID], "duplicate student id %s", s.ID)
		seen[s.ID] = true
	}
}
