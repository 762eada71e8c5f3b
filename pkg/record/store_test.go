package record_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vivaprep/vivaprep/pkg/record"
)

// storeBehaviors runs the Store contract against any implementation.
func storeBehaviors(name string, newStore func() record.Store) bool {
	return Describe(name, func() {
		var (
			store record.Store
			ctx   context.Context
		)

		BeforeEach(func() {
			ctx = context.Background()
			store = newStore()
		})

		AfterEach(func() {
			store.Close()
		})

		It("appends and retrieves an exchange", func() {
			e := record.NewExchange(3, 1, "ok", "Hi there")
			Expect(store.Append(ctx, e)).To(Succeed())

			got, err := store.Get(ctx, e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(e.ID))
			Expect(got.Turns).To(Equal(3))
			Expect(got.Skipped).To(Equal(1))
			Expect(got.Outcome).To(Equal("ok"))
			Expect(got.ReplyPreview).To(Equal("Hi there"))
		})

		It("returns ErrNotFound for unknown IDs", func() {
			_, err := store.Get(ctx, "nope")
			Expect(err).To(BeAssignableToTypeOf(record.ErrNotFound{}))
		})

		It("ignores duplicate appends", func() {
			e := record.NewExchange(1, 0, "ok", "a")
			Expect(store.Append(ctx, e)).To(Succeed())
			Expect(store.Append(ctx, e)).To(Succeed())

			all, err := store.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
		})

		It("lists exchanges in chronological order", func() {
			first := record.NewExchange(1, 0, "ok", "first")
			second := record.NewExchange(2, 0, "transport-error", "")
			Expect(store.Append(ctx, first)).To(Succeed())
			Expect(store.Append(ctx, second)).To(Succeed())

			all, err := store.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
			Expect(all[0].ID).To(Equal(first.ID))
			Expect(all[1].ID).To(Equal(second.ID))
		})

		It("lists nothing when empty", func() {
			all, err := store.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})

		It("reports its length", func() {
			count, err := store.Len(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(0))

			Expect(store.Append(ctx, record.NewExchange(1, 0, "ok", "a"))).To(Succeed())
			Expect(store.Append(ctx, record.NewExchange(2, 0, "ok", "b"))).To(Succeed())

			count, err = store.Len(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})
}

var _ = storeBehaviors("MemoryStore", func() record.Store {
	return record.NewMemoryStore()
})

var _ = storeBehaviors("SQLiteStore", func() record.Store {
	s, err := record.NewSQLiteStore(":memory:")
	Expect(err).NotTo(HaveOccurred())
	return s
})

var _ = Describe("SQLiteStore files", func() {
	It("creates a database file on disk", func() {
		tmpDir := GinkgoT().TempDir()
		dbPath := filepath.Join(tmpDir, "exchanges.db")

		s, err := record.NewSQLiteStore(dbPath)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		Expect(s.Append(context.Background(), record.NewExchange(1, 0, "ok", "x"))).To(Succeed())

		_, err = os.Stat(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("NewExchange", func() {
	It("derives distinct IDs for distinct content", func() {
		a := record.NewExchange(1, 0, "ok", "a")
		b := record.NewExchange(1, 0, "ok", "b")
		Expect(a.ID).NotTo(Equal(b.ID))
		Expect(a.ID).To(HaveLen(64))
	})
})
