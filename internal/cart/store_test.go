package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwheel-io/storefront/internal/domain"
)

// --- Test Helpers ---

func inputP1() AddItemInput {
	return AddItemInput{ProductID: "prod-1", Name: "Walnut Desk Organizer", UnitPrice: 2499, ImageURL: "/img/prod-1.jpg"}
}

func inputP2() AddItemInput {
	return AddItemInput{ProductID: "prod-2", Name: "Ceramic Pour-Over Set", UnitPrice: 3950}
}

// recorder subscribes to both feeds after construction and collects every
// emission, including the replay delivered at subscribe time.
type recorder struct {
	lines  [][]domain.CartLine
	counts []int
}

func newRecorder(s *Store) *recorder {
	r := &recorder{}
	s.Lines().Subscribe(func(lines []domain.CartLine) {
		r.lines = append(r.lines, lines)
	})
	s.TotalCount().Subscribe(func(count int) {
		r.counts = append(r.counts, count)
	})
	return r
}

// emissions reports how many publishes the recorder has seen beyond the
// initial replay.
func (r *recorder) emissions() int {
	return len(r.counts) - 1
}

func (r *recorder) lastLines() []domain.CartLine {
	return r.lines[len(r.lines)-1]
}

func (r *recorder) lastCount() int {
	return r.counts[len(r.counts)-1]
}

// --- AddItem ---

func TestAddItem_NewLine(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())

	lines := s.Lines().Value()
	require.Len(t, lines, 1)
	assert.Equal(t, "prod-1", lines[0].ProductID)
	assert.Equal(t, "Walnut Desk Organizer", lines[0].Name)
	assert.Equal(t, int64(2499), lines[0].UnitPrice)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "/img/prod-1.jpg", lines[0].ImageURL)
	assert.Equal(t, 1, s.TotalCount().Value())
}

func TestAddItem_SameProductMergesIntoOneLine(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP1())

	lines := s.Lines().Value()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, s.TotalCount().Value())
}

func TestAddItem_MergeKeepsOriginalSnapshot(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())

	changed := inputP1()
	changed.Name = "Renamed Product"
	changed.UnitPrice = 9999
	changed.ImageURL = "/img/new.jpg"
	s.AddItem(changed)

	lines := s.Lines().Value()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Walnut Desk Organizer", lines[0].Name)
	assert.Equal(t, int64(2499), lines[0].UnitPrice)
	assert.Equal(t, "/img/prod-1.jpg", lines[0].ImageURL)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP2())
	s.AddItem(inputP1())

	lines := s.Lines().Value()
	require.Len(t, lines, 2)
	assert.Equal(t, "prod-1", lines[0].ProductID)
	assert.Equal(t, "prod-2", lines[1].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAddItem_AlwaysPublishes(t *testing.T) {
	s := NewStore()
	r := newRecorder(s)

	s.AddItem(inputP1())
	s.AddItem(inputP1())

	assert.Equal(t, 2, r.emissions())
}

// --- RemoveItem ---

func TestRemoveItem_RemovesWholeLine(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP1())
	s.AddItem(inputP2())

	s.RemoveItem("prod-1")

	lines := s.Lines().Value()
	require.Len(t, lines, 1)
	assert.Equal(t, "prod-2", lines[0].ProductID)
	assert.Equal(t, 1, s.TotalCount().Value())
}

func TestRemoveItem_UnknownProductIsSilent(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	r := newRecorder(s)

	s.RemoveItem("prod-missing")

	assert.Equal(t, 0, r.emissions())
	assert.Len(t, s.Lines().Value(), 1)
}

func TestRemoveItem_EmptyCartIsSilent(t *testing.T) {
	s := NewStore()
	r := newRecorder(s)

	s.RemoveItem("prod-1")

	assert.Equal(t, 0, r.emissions())
}

// --- SetQuantity ---

func TestSetQuantity_SetsAbsoluteValue(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP1())

	s.SetQuantity("prod-1", 5)

	lines := s.Lines().Value()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, s.TotalCount().Value())
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP2())

	s.SetQuantity("prod-1", 0)

	lines := s.Lines().Value()
	require.Len(t, lines, 1)
	assert.Equal(t, "prod-2", lines[0].ProductID)
}

func TestSetQuantity_NegativeRemovesLine(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())

	s.SetQuantity("prod-1", -3)

	assert.Empty(t, s.Lines().Value())
	assert.Equal(t, 0, s.TotalCount().Value())
}

func TestSetQuantity_UnknownProductNeverCreatesLine(t *testing.T) {
	s := NewStore()
	r := newRecorder(s)

	s.SetQuantity("prod-ghost", 4)

	assert.Equal(t, 0, r.emissions())
	assert.Empty(t, s.Lines().Value())
}

func TestSetQuantity_ZeroOnUnknownProductIsSilent(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	r := newRecorder(s)

	s.SetQuantity("prod-ghost", 0)

	assert.Equal(t, 0, r.emissions())
	assert.Len(t, s.Lines().Value(), 1)
}

func TestSetQuantity_SameValueStillPublishes(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP1())
	r := newRecorder(s)

	s.SetQuantity("prod-1", 2)

	assert.Equal(t, 1, r.emissions())
	assert.Equal(t, 2, r.lastCount())
}

// --- Clear ---

func TestClear_EmptiesCart(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP2())

	s.Clear()

	assert.Empty(t, s.Lines().Value())
	assert.NotNil(t, s.Lines().Value())
	assert.Equal(t, 0, s.TotalCount().Value())
}

func TestClear_AlreadyEmptyStillPublishes(t *testing.T) {
	s := NewStore()
	r := newRecorder(s)

	s.Clear()

	assert.Equal(t, 1, r.emissions())
	assert.Empty(t, r.lastLines())
	assert.Equal(t, 0, r.lastCount())
}

// --- TotalPrice ---

func TestTotalPrice_SumsLineSubtotals(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP1())
	s.AddItem(inputP2())

	assert.Equal(t, int64(2*2499+3950), s.TotalPrice())
}

func TestTotalPrice_EmptyCartIsZero(t *testing.T) {
	s := NewStore()
	assert.Equal(t, int64(0), s.TotalPrice())
}

func TestTotalPrice_DoesNotPublish(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	r := newRecorder(s)

	_ = s.TotalPrice()

	assert.Equal(t, 0, r.emissions())
}

func TestTotalPrice_ReflectsQuantityChanges(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.SetQuantity("prod-1", 4)

	assert.Equal(t, int64(4*2499), s.TotalPrice())
}

// --- View ---

func TestView_ConsistentSnapshot(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP2())
	s.AddItem(inputP2())

	view := s.View()

	assert.Len(t, view.Lines, 2)
	assert.Equal(t, 3, view.TotalCount)
	assert.Equal(t, int64(2499+2*3950), view.TotalPrice)
}

func TestView_EmptyCart(t *testing.T) {
	view := NewStore().View()

	assert.NotNil(t, view.Lines)
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.TotalCount)
	assert.Equal(t, int64(0), view.TotalPrice)
}

// --- Subscription Contract ---

func TestSubscribe_ReplaysCurrentValue(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP2())

	var gotLines []domain.CartLine
	gotCount := -1
	s.Lines().Subscribe(func(lines []domain.CartLine) { gotLines = lines })
	s.TotalCount().Subscribe(func(count int) { gotCount = count })

	assert.Len(t, gotLines, 2)
	assert.Equal(t, 2, gotCount)
}

func TestSubscribe_ReplayOnEmptyStore(t *testing.T) {
	s := NewStore()

	var gotLines []domain.CartLine
	called := false
	s.Lines().Subscribe(func(lines []domain.CartLine) {
		gotLines = lines
		called = true
	})

	assert.True(t, called)
	assert.NotNil(t, gotLines)
	assert.Empty(t, gotLines)
}

func TestPublish_ExactlyOnePerFeedPerMutation(t *testing.T) {
	s := NewStore()
	r := newRecorder(s)

	s.AddItem(inputP1())
	s.SetQuantity("prod-1", 3)
	s.RemoveItem("prod-1")
	s.Clear()

	assert.Equal(t, 4, r.emissions())
	assert.Len(t, r.lines, 5)
	assert.Len(t, r.counts, 5)
}

func TestPublish_LinesBeforeCount(t *testing.T) {
	s := NewStore()

	var order []string
	s.Lines().Subscribe(func([]domain.CartLine) { order = append(order, "lines") })
	s.TotalCount().Subscribe(func(int) { order = append(order, "count") })

	s.AddItem(inputP1())

	require.Len(t, order, 4)
	assert.Equal(t, []string{"lines", "count", "lines", "count"}, order)
}

func TestPublish_CountMatchesLinesAlreadyPublished(t *testing.T) {
	s := NewStore()

	s.TotalCount().Subscribe(func(count int) {
		assert.Equal(t, domain.TotalQuantity(s.Lines().Value()), count)
	})

	s.AddItem(inputP1())
	s.AddItem(inputP1())
	s.AddItem(inputP2())
	s.SetQuantity("prod-1", 7)
	s.Clear()
}

func TestPublish_DeliveryInRegistrationOrder(t *testing.T) {
	s := NewStore()

	var order []int
	s.TotalCount().Subscribe(func(int) { order = append(order, 1) })
	s.TotalCount().Subscribe(func(int) { order = append(order, 2) })
	s.TotalCount().Subscribe(func(int) { order = append(order, 3) })
	order = nil

	s.AddItem(inputP1())

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	s := NewStore()

	calls := 0
	cancel := s.TotalCount().Subscribe(func(int) { calls++ })
	require.Equal(t, 1, calls)

	s.AddItem(inputP1())
	require.Equal(t, 2, calls)

	cancel()
	s.AddItem(inputP1())
	assert.Equal(t, 2, calls)
}

func TestSubscribe_CancelTwiceIsHarmless(t *testing.T) {
	s := NewStore()

	cancel := s.TotalCount().Subscribe(func(int) {})
	cancel()
	cancel()

	s.AddItem(inputP1())
	assert.Equal(t, 1, s.TotalCount().Value())
}

func TestSubscribe_IndependentSubscribers(t *testing.T) {
	s := NewStore()

	var a, b []int
	cancelA := s.TotalCount().Subscribe(func(c int) { a = append(a, c) })
	s.TotalCount().Subscribe(func(c int) { b = append(b, c) })

	s.AddItem(inputP1())
	cancelA()
	s.AddItem(inputP1())

	assert.Equal(t, []int{0, 1}, a)
	assert.Equal(t, []int{0, 1, 2}, b)
}

func TestSnapshot_SubscriberCannotMutateStore(t *testing.T) {
	s := NewStore()
	s.Lines().Subscribe(func(lines []domain.CartLine) {
		for i := range lines {
			lines[i].Quantity = 999
		}
	})

	s.AddItem(inputP1())
	s.AddItem(inputP2())

	lines := s.Lines().Value()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, s.TotalCount().Value())
	assert.Equal(t, int64(2499+3950), s.TotalPrice())
}

// --- Re-entrancy ---

func TestReentrantMutation_DeferredUntilPublishCompletes(t *testing.T) {
	s := NewStore()

	var counts []int
	s.TotalCount().Subscribe(func(count int) {
		counts = append(counts, count)
		if count == 1 {
			s.AddItem(inputP2())
		}
	})

	s.AddItem(inputP1())

	assert.Equal(t, []int{0, 1, 2}, counts)
	assert.Len(t, s.Lines().Value(), 2)
}

func TestReentrantMutation_LinesFeedSeesBothPasses(t *testing.T) {
	s := NewStore()

	var sizes []int
	s.Lines().Subscribe(func(lines []domain.CartLine) {
		sizes = append(sizes, len(lines))
		if len(lines) == 1 && lines[0].ProductID == "prod-1" {
			s.RemoveItem("prod-1")
		}
	})

	s.AddItem(inputP1())

	assert.Equal(t, []int{0, 1, 0}, sizes)
	assert.Empty(t, s.Lines().Value())
}

func TestReentrantMutation_CountSubscriberSeesCompleteFirstPass(t *testing.T) {
	s := NewStore()

	var order []string
	s.Lines().Subscribe(func(lines []domain.CartLine) {
		order = append(order, "lines")
		if len(lines) == 1 {
			s.Clear()
		}
	})
	s.TotalCount().Subscribe(func(int) { order = append(order, "count") })
	order = nil

	s.AddItem(inputP1())

	// The clear issued inside the lines callback must wait for the add's
	// count publish before running its own full pass.
	assert.Equal(t, []string{"lines", "count", "lines", "count"}, order)
}

// --- Concurrency ---

func TestConcurrentAdds_AllApplied(t *testing.T) {
	s := NewStore()

	const goroutines = 8
	const addsEach = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < addsEach; i++ {
				s.AddItem(inputP1())
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*addsEach, s.TotalCount().Value())
	require.Len(t, s.Lines().Value(), 1)
	assert.Equal(t, goroutines*addsEach, s.Lines().Value()[0].Quantity)
}

func TestConcurrentReads_SafeDuringMutations(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			s.AddItem(inputP2())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = s.TotalPrice()
			_ = s.Lines().Value()
			_ = s.TotalCount().Value()
		}
	}()
	wg.Wait()

	assert.Equal(t, 101, s.TotalCount().Value())
}

// --- End-to-end sequences ---

func TestSequence_AddAddAdd(t *testing.T) {
	s := NewStore()

	s.AddItem(inputP1())
	s.AddItem(inputP1())
	s.AddItem(inputP2())

	lines := s.Lines().Value()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 3, s.TotalCount().Value())
}

func TestSequence_ThenSetQuantity(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP1())
	s.AddItem(inputP2())

	s.SetQuantity("prod-1", 5)

	assert.Equal(t, 6, s.TotalCount().Value())
	assert.Equal(t, int64(5*2499+3950), s.TotalPrice())
}

func TestSequence_ThenRemove(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	s.AddItem(inputP1())
	s.AddItem(inputP2())
	s.SetQuantity("prod-1", 5)

	s.RemoveItem("prod-2")

	assert.Equal(t, 5, s.TotalCount().Value())
	require.Len(t, s.Lines().Value(), 1)
	assert.Equal(t, "prod-1", s.Lines().Value()[0].ProductID)
}

func TestSequence_ThenClearTwice(t *testing.T) {
	s := NewStore()
	s.AddItem(inputP1())
	r := newRecorder(s)

	s.Clear()
	s.Clear()

	assert.Equal(t, 2, r.emissions())
	assert.Empty(t, r.lastLines())
	assert.Equal(t, 0, r.lastCount())
}
