package registry

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "registry.json"))
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestStoreAddAndGet(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		store := tempStore(t)

		Convey("When a server is added", func() {
			entry, err := store.Add(ServerEntry{
				Name:    "weather",
				Address: "http://localhost:3210",
				Tools: []ToolRef{
					{Name: "forecast", Description: "Seven day forecast"},
				},
			})

			So(err, ShouldBeNil)

			Convey("It should be assigned an id", func() {
				So(entry.ID, ShouldNotBeEmpty)
			})

			Convey("It should be retrievable", func() {
				got, ok := store.Get(entry.ID)

				So(ok, ShouldBeTrue)
				So(got.Name, ShouldEqual, "weather")
				So(got.Tools[0].Name, ShouldEqual, "forecast")
			})
		})

		Convey("When getting a non-existent server", func() {
			_, ok := store.Get("missing")

			Convey("It should not be found", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestStoreRemove(t *testing.T) {
	Convey("Given a registry with a server", t, func() {
		store := tempStore(t)
		entry, err := store.Add(ServerEntry{Name: "calc", Address: "http://localhost:3212"})
		So(err, ShouldBeNil)

		Convey("Removing it should succeed", func() {
			removed, err := store.Remove(entry.ID)

			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)

			_, ok := store.Get(entry.ID)
			So(ok, ShouldBeFalse)
		})

		Convey("Removing an unknown id should report false", func() {
			removed, err := store.Remove("missing")

			So(err, ShouldBeNil)
			So(removed, ShouldBeFalse)
		})
	})
}

func TestStorePersistence(t *testing.T) {
	Convey("Given a registry persisted to disk", t, func() {
		path := filepath.Join(t.TempDir(), "registry.json")

		store := NewStore(path)
		So(store.Load(), ShouldBeNil)

		entry, err := store.Add(ServerEntry{Name: "hr-tools", Address: "http://localhost:3213"})
		So(err, ShouldBeNil)

		Convey("A fresh store on the same file should see the entry", func() {
			reopened := NewStore(path)
			So(reopened.Load(), ShouldBeNil)

			got, ok := reopened.Get(entry.ID)
			So(ok, ShouldBeTrue)
			So(got.Name, ShouldEqual, "hr-tools")
		})

		Convey("The file should be rewritten wholesale on removal", func() {
			removed, err := store.Remove(entry.ID)
			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldNotContainSubstring, "hr-tools")
		})
	})
}

func TestStoreExportImportRoundTrip(t *testing.T) {
	Convey("Given a registry with servers", t, func() {
		store := tempStore(t)

		_, err := store.Add(ServerEntry{
			ID:      "srv-1",
			Name:    "weather",
			Address: "http://localhost:3210",
			Tools: []ToolRef{
				{Name: "forecast", Description: "Seven day forecast"},
				{Name: "current", Description: "Current conditions"},
			},
		})
		So(err, ShouldBeNil)

		_, err = store.Add(ServerEntry{
			ID:      "srv-2",
			Name:    "calc",
			Address: "http://localhost:3212",
			Tools:   []ToolRef{{Name: "add"}},
		})
		So(err, ShouldBeNil)

		Convey("Exporting then importing should yield the same entries", func() {
			var buf bytes.Buffer
			So(store.Export(&buf), ShouldBeNil)

			fresh := tempStore(t)
			So(fresh.Import(&buf), ShouldBeNil)

			So(fresh.List(), ShouldResemble, store.List())
		})
	})
}
