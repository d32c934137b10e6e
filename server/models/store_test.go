package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var regis = Person{
	FirstName: "Regis",
	LastName:  "da Silva",
	Email:     "regis@example.com",
	Address: Address{
		Address:    "Rua Um, 123",
		Complement: "Apto 4",
		District:   "Centro",
		City:       "São Paulo",
		UF:         "SP",
		Cep:        "01000-000",
	},
}

// steppingClock returns a clock that moves one second forward on every call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%v", filepath.Join(t.TempDir(), DB_NAME))
	store, err := OpenWith(sqliteEncrypt.Open(dsn), steppingClock(time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC)))
	require.Nil(t, err)

	t.Cleanup(func() { store.Close() })
	return store
}

func createPerson(t *testing.T, store *Store, person Person) *Person {
	t.Helper()

	err := store.CreatePerson(&person)
	require.Nil(t, err, "Should create person %v", person.FirstName)
	return &person
}

func TestCreatePerson(t *testing.T) {
	store := newTestStore(t)
	person := createPerson(t, store, regis)

	assert.NotZero(t, person.ID)
	assert.False(t, person.Created.IsZero(), "created should be set on insert")
	assert.True(t, person.Created.Equal(person.Modified))

	found, err := store.FindPerson(person.ID)
	require.Nil(t, err)
	assert.Equal(t, "Regis da Silva", found.String())
	assert.Equal(t, "São Paulo", found.City)
	assert.Equal(t, UF("SP"), found.UF)
	assert.False(t, found.Blocked)
	assert.Equal(t, fmt.Sprintf("/person/%d/", person.ID), found.AbsoluteURL())
}

func TestCreatePersonRejectsInvalidFields(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		description string
		person      Person
		field       string
	}{
		{"first name is required", Person{}, "first_name"},
		{"first name max length", Person{FirstName: string(make([]byte, 51))}, "first_name"},
		{"bad email", Person{FirstName: "Ana", Email: "not-an-email"}, "email"},
		{"email max length", Person{FirstName: "Ana", Email: strings.Repeat("a", 250) + "@mail.com"}, "email"},
		{"unknown uf", Person{FirstName: "Ana", Address: Address{UF: "XX"}}, "uf"},
		{"cep max length", Person{FirstName: "Ana", Address: Address{Cep: "0123456789"}}, "cep"},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			person := c.person
			err := store.CreatePerson(&person)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
			assert.Contains(t, verr.Fields, c.field)
			assert.Zero(t, person.ID)
		})
	}

	persons, _, err := store.ListPersons("", 1)
	require.Nil(t, err)
	assert.Empty(t, persons, "Invalid persons should never be stored")
}

func TestUpdatePersonKeepsCreatedAndRefreshesModified(t *testing.T) {
	store := newTestStore(t)
	person := createPerson(t, store, regis)
	created, modified := person.Created, person.Modified

	for _, lastName := range []string{"Souza", ""} {
		update := *person
		update.LastName = lastName

		err := store.UpdatePerson(person.ID, &update)
		require.Nil(t, err)

		found, err := store.FindPerson(person.ID)
		require.Nil(t, err)

		assert.True(t, found.Created.Equal(created), "created must not change on update")
		assert.True(t, found.Modified.After(modified), "modified must move forward on update")
		assert.Equal(t, lastName, found.LastName)

		modified = found.Modified
	}

	found, err := store.FindPerson(person.ID)
	require.Nil(t, err)
	assert.Equal(t, "Regis", found.String())
}

func TestUpdatePersonCanUnsetBlocked(t *testing.T) {
	store := newTestStore(t)
	blocked := regis
	blocked.Blocked = true
	person := createPerson(t, store, blocked)

	update := *person
	update.Blocked = false
	require.Nil(t, store.UpdatePerson(person.ID, &update))

	found, err := store.FindPerson(person.ID)
	require.Nil(t, err)
	assert.False(t, found.Blocked)
}

func TestUpdateMissingPerson(t *testing.T) {
	store := newTestStore(t)

	update := regis
	err := store.UpdatePerson(42, &update)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestFindMissingPerson(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindPerson(0)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeletePersonWithPhonesIsProtected(t *testing.T) {
	store := newTestStore(t)
	person := createPerson(t, store, regis)

	phone := Phone{Phone: "11 98765-4321", PersonID: person.ID}
	require.Nil(t, store.CreatePhone(&phone))

	err := store.DeletePerson(person.ID)
	assert.True(t, errors.Is(err, ErrProtected), "expected ErrProtected, got %v", err)

	_, err = store.FindPerson(person.ID)
	assert.Nil(t, err, "Person should still exist")

	phones, err := store.ListPhones(person.ID)
	require.Nil(t, err)
	assert.Len(t, phones, 1, "Phone should still exist")

	require.Nil(t, store.DeletePhone(phone.ID))
	assert.Nil(t, store.DeletePerson(person.ID), "Person without phones can be deleted")
}

func TestDeletePersonCascadesToExpenses(t *testing.T) {
	store := newTestStore(t)
	person := createPerson(t, store, regis)
	other := createPerson(t, store, Person{FirstName: "Ana", LastName: "Souza"})

	for _, value := range []string{"10.00", "5.50"} {
		require.Nil(t, store.CreateExpense(&Expense{PersonID: person.ID, Value: decimal.RequireFromString(value)}))
	}
	require.Nil(t, store.CreateExpense(&Expense{PersonID: other.ID, Value: decimal.RequireFromString("1.00")}))

	require.Nil(t, store.DeletePerson(person.ID))

	_, err := store.FindPerson(person.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	expenses, err := store.AllExpenses()
	require.Nil(t, err)
	require.Len(t, expenses, 1, "Only the other person's expense should remain")
	assert.Equal(t, other.ID, expenses[0].PersonID)
}

func TestDeleteMissingPerson(t *testing.T) {
	store := newTestStore(t)

	err := store.DeletePerson(7)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListPersonsPagination(t *testing.T) {
	store := newTestStore(t)

	persons, paging, err := store.ListPersons("", 1)
	require.Nil(t, err, "Page 1 of an empty list is valid")
	assert.Empty(t, persons)
	assert.Equal(t, int64(1), paging.Pages)

	for i := 0; i < 11; i++ {
		createPerson(t, store, Person{FirstName: fmt.Sprintf("Person %02d", 10-i)})
	}

	persons, paging, err = store.ListPersons("", 1)
	require.Nil(t, err)
	assert.Len(t, persons, 10)
	assert.Equal(t, "Person 00", persons[0].FirstName, "Persons should be ordered by first name")
	assert.Equal(t, &Paging{Total: 11, Page: 1, Pages: 2}, paging)

	persons, paging, err = store.ListPersons("", 2)
	require.Nil(t, err)
	assert.Len(t, persons, 1)
	assert.Equal(t, "Person 10", persons[0].FirstName)
	assert.False(t, paging.HasNext())

	_, _, err = store.ListPersons("", 3)
	assert.True(t, errors.Is(err, ErrInvalidPage))
}

func TestListPersonsSearch(t *testing.T) {
	store := newTestStore(t)
	createPerson(t, store, regis)
	createPerson(t, store, Person{FirstName: "Ana", LastName: "Souza", Email: "ana@mail.com"})

	cases := []struct {
		query    string
		expected []string
	}{
		{"regis", []string{"Regis da Silva"}},
		{"REGIS", []string{"Regis da Silva"}},
		{"souza", []string{"Ana Souza"}},
		{"mail.com", []string{"Ana Souza"}},
		{"example", []string{"Regis da Silva"}},
		{"", []string{"Ana Souza", "Regis da Silva"}},
		{"%", []string{}},
		{"zzz", []string{}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("search %q", c.query), func(t *testing.T) {
			persons, _, err := store.ListPersons(c.query, 1)
			require.Nil(t, err)

			names := []string{}
			for _, person := range persons {
				names = append(names, person.String())
			}
			assert.Equal(t, c.expected, names)
		})
	}
}

func TestListPersonsSearchFoldsAccents(t *testing.T) {
	store := newTestStore(t)
	createPerson(t, store, Person{FirstName: "Érica", LastName: "Araújo"})
	createPerson(t, store, Person{FirstName: "Ana", LastName: "Souza"})
	for i := 0; i < 11; i++ {
		createPerson(t, store, Person{FirstName: fmt.Sprintf("Íris %02d", i)})
	}

	for _, query := range []string{"érica", "ÉRICA", "ARAÚJO", "araújo"} {
		t.Run(query, func(t *testing.T) {
			persons, paging, err := store.ListPersons(query, 1)
			require.Nil(t, err)
			require.Len(t, persons, 1)
			assert.Equal(t, "Érica Araújo", persons[0].String())
			assert.Equal(t, int64(1), paging.Total)
		})
	}

	persons, paging, err := store.ListPersons("íris", 1)
	require.Nil(t, err)
	assert.Len(t, persons, 10)
	assert.Equal(t, int64(2), paging.Pages, "Pages should count the filtered persons")

	persons, _, err = store.ListPersons("ÍRIS", 2)
	require.Nil(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "Íris 10", persons[0].FirstName)

	_, _, err = store.ListPersons("érica", 2)
	assert.True(t, errors.Is(err, ErrInvalidPage))
}

func TestPhoneCRUD(t *testing.T) {
	store := newTestStore(t)
	person := createPerson(t, store, regis)

	phone := Phone{Phone: "11 3333-4444", PersonID: person.ID}
	require.Nil(t, store.CreatePhone(&phone))
	assert.Equal(t, PRINCIPAL_PHONE, phone.PhoneType, "Phone type should default to principal")

	update := Phone{Phone: "11 99999-0000", PhoneType: CELLULAR_PHONE, PersonID: person.ID}
	require.Nil(t, store.UpdatePhone(phone.ID, &update))

	found, err := store.FindPhone(phone.ID)
	require.Nil(t, err)
	assert.Equal(t, "11 99999-0000", found.String())
	assert.Equal(t, CELLULAR_PHONE, found.PhoneType)

	invalid := Phone{Phone: "1", PhoneType: "zz", PersonID: person.ID}
	var verr *ValidationError
	assert.True(t, errors.As(store.CreatePhone(&invalid), &verr))
	assert.Contains(t, verr.Fields, "phone_type")

	orphan := Phone{Phone: "1", PersonID: 999}
	assert.True(t, errors.Is(store.CreatePhone(&orphan), gorm.ErrRecordNotFound))

	person, err = store.FindPerson(person.ID)
	require.Nil(t, err)
	assert.Len(t, person.Phones, 1, "FindPerson should load phones")

	require.Nil(t, store.DeletePhone(phone.ID))
	assert.True(t, errors.Is(store.DeletePhone(phone.ID), gorm.ErrRecordNotFound))
}

func TestExpenseCRUD(t *testing.T) {
	store := newTestStore(t)
	person := createPerson(t, store, regis)

	expense := Expense{PersonID: person.ID, Value: decimal.RequireFromString("10.5"), Image: "media/receipt.png"}
	require.Nil(t, store.CreateExpense(&expense))
	assert.Equal(t, "Regis da Silva - 10.50", expense.String())
	assert.True(t, expense.Created.Equal(expense.Modified))

	update := Expense{PersonID: person.ID, Value: decimal.RequireFromString("12.00")}
	require.Nil(t, store.UpdateExpense(expense.ID, &update))
	assert.Equal(t, "Regis da Silva - 12.00", update.String(), "Update should load the person")

	found, err := store.FindExpense(expense.ID)
	require.Nil(t, err)
	assert.True(t, found.Value.Equal(decimal.RequireFromString("12")))
	assert.True(t, found.Created.Equal(expense.Created), "created must not change on update")
	assert.True(t, found.Modified.After(expense.Modified))
	assert.Equal(t, "Regis da Silva - 12.00", found.String())

	require.Nil(t, store.DeleteExpense(expense.ID))
	_, err = store.FindExpense(expense.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCreateExpenseRejectsBadValues(t *testing.T) {
	store := newTestStore(t)
	person := createPerson(t, store, regis)

	for _, value := range []string{"1000000.00", "10.123"} {
		t.Run(value, func(t *testing.T) {
			err := store.CreateExpense(&Expense{PersonID: person.ID, Value: decimal.RequireFromString(value)})

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
			assert.Contains(t, verr.Fields, "value")
		})
	}

	err := store.CreateExpense(&Expense{PersonID: 999, Value: decimal.RequireFromString("1")})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListExpensesInInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	zeca := createPerson(t, store, Person{FirstName: "Zeca"})
	ana := createPerson(t, store, Person{FirstName: "Ana"})

	for i := 0; i < 11; i++ {
		owner := zeca
		if i%2 == 1 {
			owner = ana
		}
		require.Nil(t, store.CreateExpense(&Expense{PersonID: owner.ID, Value: decimal.NewFromInt(int64(i + 1))}))
	}

	expenses, paging, err := store.ListExpenses(1)
	require.Nil(t, err)
	require.Len(t, expenses, 10)
	assert.Equal(t, int64(2), paging.Pages)
	assert.Equal(t, "Zeca - 1.00", expenses[0].String())
	assert.Equal(t, "Ana - 2.00", expenses[1].String())

	expenses, _, err = store.ListExpenses(2)
	require.Nil(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Zeca - 11.00", expenses[0].String())
}

func TestExpenseReportTotal(t *testing.T) {
	store := newTestStore(t)
	person := createPerson(t, store, regis)

	for _, value := range []string{"10.00", "5.50", "3.25"} {
		require.Nil(t, store.CreateExpense(&Expense{PersonID: person.ID, Value: decimal.RequireFromString(value)}))
	}

	expenses, err := store.AllExpenses()
	require.Nil(t, err)

	total := Total(expenses)
	assert.True(t, total.Equal(decimal.RequireFromString("18.75")), "total was %v", total)
	assert.Equal(t, "18.75", total.StringFixed(2))
}
