package oplogo

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bodgit/oplogo/plmn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *LogoDB {
	t.Helper()
	db, err := NewLogoDB(filepath.Join(t.TempDir(), "oplogo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogoDBSaveLoad(t *testing.T) {
	db := newTestDB(t)

	l, err := FromHex(vincitHex)
	require.NoError(t, err)
	require.NoError(t, l.SetNetwork(plmn.ID{MCC: 123, MNC: 45}))

	id, err := db.Save("vincit", l)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := db.Load("vincit")
	require.NoError(t, err)
	assert.True(t, l.Equal(got))
	assert.Equal(t, l.EncodeHex(), got.EncodeHex())
}

func TestLogoDBReplace(t *testing.T) {
	db := newTestDB(t)

	first, err := db.Save("logo", New())
	require.NoError(t, err)

	l := randomLogo(t, 3)
	second, err := db.Save("logo", l)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := db.Load("logo")
	require.NoError(t, err)
	assert.True(t, l.Equal(got))

	entries, err := db.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLogoDBNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Load("missing")
	assert.Equal(t, ErrNotFound, err)
	assert.Equal(t, ErrNotFound, db.Delete("missing"))
}

func TestLogoDBListDelete(t *testing.T) {
	db := newTestDB(t)

	vincit, err := FromBase64(DefaultToken)
	require.NoError(t, err)

	_, err = db.Save("b", vincit)
	require.NoError(t, err)
	_, err = db.Save("a", New())
	require.NoError(t, err)
	_, err = db.Save("c", vincit)
	require.NoError(t, err)

	entries, err := db.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "b", entries[1].Name)
	assert.Equal(t, DefaultToken, entries[1].Token)
	assert.Equal(t, plmn.ID{MCC: DefaultMCC, MNC: DefaultMNC}, entries[1].Network)
	assert.Equal(t, Fingerprint(vincit), entries[1].SHA1)

	names, err := db.FindBySHA1(Fingerprint(vincit))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, names)

	require.NoError(t, db.Delete("b"))
	entries, err = db.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLogoDBSaveConcurrent(t *testing.T) {
	db := newTestDB(t)

	const names, writers = 20, 4

	var wg sync.WaitGroup
	errc := make(chan error, names*writers)
	for i := 0; i < names; i++ {
		for j := 0; j < writers; j++ {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				if _, err := db.Save(name, New()); err != nil {
					errc <- err
				}
			}(fmt.Sprintf("logo%02d", i))
		}
	}
	wg.Wait()
	close(errc)

	for err := range errc {
		assert.NoError(t, err)
	}

	entries, err := db.List()
	require.NoError(t, err)
	assert.Len(t, entries, names)
}
