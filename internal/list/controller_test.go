//nolint:testpackage // Тесты в том же пакете для доступа к поколениям загрузки
package list

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/passman/internal/models"
)

// fakeOps собирает операции над заметками с управляемыми ответами и счетчиками.
type fakeOps struct {
	fetchResult  []models.Note
	fetchErr     error
	fetchCalls   int
	createCalls  int
	createErr    error
	updateCalls  int
	updateErr    error
	deletedIDs   []int64
	deleteErr    error
	sortedResult []models.Note
	sortedErr    error
	sortedOrder  models.SortOrder
	sortedCalls  int
}

func (f *fakeOps) ops() Ops[models.Note] {
	return Ops[models.Note]{
		Fetch: func(_ context.Context) ([]models.Note, error) {
			f.fetchCalls++
			return f.fetchResult, f.fetchErr
		},
		FetchSorted: func(_ context.Context, order models.SortOrder) ([]models.Note, error) {
			f.sortedCalls++
			f.sortedOrder = order
			return f.sortedResult, f.sortedErr
		},
		Create: func(_ context.Context, _ models.Note) error {
			f.createCalls++
			return f.createErr
		},
		Update: func(_ context.Context, _ models.Note) error {
			f.updateCalls++
			return f.updateErr
		},
		Delete: func(_ context.Context, id int64) error {
			if f.deleteErr != nil {
				return f.deleteErr
			}
			f.deletedIDs = append(f.deletedIDs, id)
			return nil
		},
		Merge: func(current, patch models.Note) models.Note {
			current.NoteText = patch.NoteText
			current.Username = patch.Username
			current.Password = patch.Password
			return current
		},
	}
}

func TestController_Refresh(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	t.Run("СерверныйПорядокСохраняется", func(_ *testing.T) {
		fake := &fakeOps{fetchResult: []models.Note{{ID: 3}, {ID: 1}, {ID: 2}}}
		c := NewController(fake.ops())

		require.NoError(c.Refresh(ctx))
		items := c.Items()
		require.Len(items, 3)
		assert.Equal(int64(3), items[0].ID)
		assert.Equal(int64(1), items[1].ID)
		assert.Equal(int64(2), items[2].ID)
		assert.Empty(c.Err())
	})

	t.Run("ОшибкаСохраняетПрежниеЭлементы", func(_ *testing.T) {
		fake := &fakeOps{fetchResult: []models.Note{{ID: 1}}}
		c := NewController(fake.ops())
		require.NoError(c.Refresh(ctx))

		fake.fetchErr = errors.New("сервер недоступен")
		require.Error(c.Refresh(ctx))

		assert.Len(c.Items(), 1)
		assert.Equal("сервер недоступен", c.Err())
	})

	t.Run("УстаревшееПоколениеОтбрасывается", func(_ *testing.T) {
		c := NewController((&fakeOps{}).ops())

		oldGen := c.beginFetch()
		newGen := c.beginFetch()

		// Медленный ответ старого поколения приходит после нового
		applied := c.finishFetch(newGen, []models.Note{{ID: 2}}, nil)
		assert.True(applied)
		applied = c.finishFetch(oldGen, []models.Note{{ID: 1}}, nil)
		assert.False(applied)

		items := c.Items()
		require.Len(items, 1)
		assert.Equal(int64(2), items[0].ID)
	})
}

func TestController_Submit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	t.Run("НоваяСущностьУходитВCreate", func(_ *testing.T) {
		fake := &fakeOps{fetchResult: []models.Note{{ID: 10, NoteText: "создана"}}}
		c := NewController(fake.ops())

		require.NoError(c.Submit(ctx, models.Note{NoteText: "создана"}))
		assert.Equal(1, fake.createCalls)
		assert.Equal(0, fake.updateCalls)
		// Создание перечитывает список целиком
		assert.Equal(1, fake.fetchCalls)
		require.Len(c.Items(), 1)
	})

	t.Run("СуществующаяСущностьУходитВUpdate", func(_ *testing.T) {
		fake := &fakeOps{fetchResult: []models.Note{
			{ID: 1, NoteText: "старая", CreatedAt: testTime()},
			{ID: 2, NoteText: "другая"},
		}}
		c := NewController(fake.ops())
		require.NoError(c.Refresh(ctx))
		fake.fetchCalls = 0

		require.NoError(c.Submit(ctx, models.Note{ID: 1, NoteText: "новая", Password: "p"}))
		assert.Equal(0, fake.createCalls)
		assert.Equal(1, fake.updateCalls)
		// Обновление не вызывает перечитывание
		assert.Equal(0, fake.fetchCalls)

		items := c.Items()
		assert.Equal("новая", items[0].NoteText)
		assert.Equal("p", items[0].Password)
		// Серверные поля не затираются при слиянии
		assert.Equal(testTime(), items[0].CreatedAt)
		assert.Equal("другая", items[1].NoteText)
	})

	t.Run("ОшибкаCreateНеТрогаетСписок", func(_ *testing.T) {
		fake := &fakeOps{createErr: errors.New("отказ")}
		c := NewController(fake.ops())

		require.Error(c.Submit(ctx, models.Note{NoteText: "x"}))
		assert.Equal(0, fake.fetchCalls)
		assert.Empty(c.Items())
	})
}

func TestController_Delete(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	t.Run("УдаляетсяПервоеСовпадение", func(_ *testing.T) {
		fake := &fakeOps{fetchResult: []models.Note{{ID: 1}, {ID: 2}, {ID: 3}}}
		c := NewController(fake.ops())
		require.NoError(c.Refresh(ctx))

		require.NoError(c.Delete(ctx, 2))
		items := c.Items()
		require.Len(items, 2)
		assert.Equal(int64(1), items[0].ID)
		assert.Equal(int64(3), items[1].ID)
		assert.Equal([]int64{2}, fake.deletedIDs)
	})

	t.Run("ОшибкаУдаленияНеМеняетСписок", func(_ *testing.T) {
		fake := &fakeOps{fetchResult: []models.Note{{ID: 1}}}
		c := NewController(fake.ops())
		require.NoError(c.Refresh(ctx))

		fake.deleteErr = errors.New("запрещено")
		require.Error(c.Delete(ctx, 1))
		assert.Len(c.Items(), 1)
	})
}

func TestController_ToggleSort(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	fake := &fakeOps{sortedResult: []models.Note{{ID: 2}, {ID: 1}}}
	c := NewController(fake.ops())
	assert.Equal(models.SortDesc, c.SortOrder())

	require.NoError(c.ToggleSort(ctx))
	assert.Equal(models.SortAsc, c.SortOrder())
	assert.Equal(models.SortAsc, fake.sortedOrder)
	assert.Equal(1, fake.sortedCalls)
	// Список замещен отсортированной сервером последовательностью
	items := c.Items()
	require.Len(items, 2)
	assert.Equal(int64(2), items[0].ID)

	require.NoError(c.ToggleSort(ctx))
	assert.Equal(models.SortDesc, c.SortOrder())
}

func TestController_ToggleSortFailure(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	fake := &fakeOps{sortedErr: errors.New("сервер недоступен")}
	c := NewController(fake.ops())

	// Неудачная загрузка не переключает направление
	require.Error(c.ToggleSort(ctx))
	assert.Equal(models.SortDesc, c.SortOrder())
	assert.Equal(models.SortAsc, fake.sortedOrder)

	// Следующая попытка запрашивает то же направление, а не перескакивает
	fake.sortedErr = nil
	require.NoError(c.ToggleSort(ctx))
	assert.Equal(models.SortAsc, fake.sortedOrder)
	assert.Equal(models.SortAsc, c.SortOrder())
}

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}
