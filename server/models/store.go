package models

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrProtected = errors.New("record is referenced by protected dependents")

// Store is the repository for persons, phones and expenses. Every call is
// evaluated eagerly. A missing record is reported as gorm.ErrRecordNotFound.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the schema.
func (s *Store) AutoMigrate() error {
	return errors.Wrap(s.db.AutoMigrate(&Person{}, &Phone{}, &Expense{}), "auto-migrate")
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Checkpoint moves every committed page out of the sqlite write-ahead log
// into the database file and truncates the log, so the file alone holds
// the data. It does nothing for other drivers.
func (s *Store) Checkpoint() error {
	if s.db.Dialector.Name() != SQLITE_DRIVER {
		return nil
	}

	var busy, logFrames, checkpointed int
	err := s.db.Raw("PRAGMA wal_checkpoint(TRUNCATE)").Row().Scan(&busy, &logFrames, &checkpointed)
	if err != nil {
		return errors.Wrap(err, "wal checkpoint")
	}

	if busy != 0 {
		return errors.New("wal checkpoint: database is busy")
	}

	return nil
}

func (s *Store) now() time.Time {
	return s.db.NowFunc()
}

// ---------------------------------------------------------------------------------//
// Person
// --------------------------------------------------------------------------------//

// ListPersons returns one page of the persons matching query, ordered by
// first name. The filter runs before pagination.
func (s *Store) ListPersons(query string, page int) ([]Person, *Paging, error) {
	persons, err := s.AllPersons()
	if err != nil {
		return nil, nil, err
	}

	persons = FilterPersons(persons, query)
	total := int64(len(persons))
	if err := checkPage(page, PAGE_SIZE, total); err != nil {
		return nil, nil, err
	}

	if page == 0 {
		page = 1
	}

	start := (page - 1) * PAGE_SIZE
	end := start + PAGE_SIZE
	if end > len(persons) {
		end = len(persons)
	}

	return persons[start:end], newPaging(int64(page), PAGE_SIZE, total), nil
}

// AllPersons returns every person ordered by first name.
func (s *Store) AllPersons() ([]Person, error) {
	persons := []Person{}
	err := s.db.Order("first_name").Order("id").Find(&persons).Error
	if err != nil {
		return nil, errors.Wrap(err, "all persons")
	}

	return persons, nil
}

func (s *Store) FindPerson(id uint) (*Person, error) {
	person := Person{}
	err := s.db.Preload("Phones", func(db *gorm.DB) *gorm.DB {
		return db.Order("phones.id")
	}).First(&person, id).Error
	if err != nil {
		return nil, err
	}

	return &person, nil
}

func (s *Store) CreatePerson(person *Person) error {
	if verr := person.Validate(); verr != nil {
		return verr
	}

	now := s.now()
	person.ID = 0
	person.Created = now
	person.Modified = now

	return errors.Wrap(s.db.Omit("Phones", "Expenses").Create(person).Error, "create person")
}

// UpdatePerson overwrites the editable fields of person id with the values
// in person. On success person holds the stored record.
func (s *Store) UpdatePerson(id uint, person *Person) error {
	if verr := person.Validate(); verr != nil {
		return verr
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		existing := Person{}
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		person.ID = existing.ID
		person.Created = existing.Created
		person.Modified = s.now()

		err := tx.Model(&Person{}).Where("id = ?", id).
			Select(editablePersonFields).Updates(person).Error
		return errors.Wrap(err, "update person")
	})
}

// DeletePerson removes person id and its expenses. It fails with
// ErrProtected, changing nothing, while any phone belongs to the person.
func (s *Store) DeletePerson(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Person{}, id).Error; err != nil {
			return err
		}

		var phones int64
		if err := tx.Model(&Phone{}).Where("person_id = ?", id).Count(&phones).Error; err != nil {
			return errors.Wrap(err, "count phones")
		}

		if phones > 0 {
			return errors.Wrapf(ErrProtected, "person %d has %d phone(s)", id, phones)
		}

		if err := tx.Where("person_id = ?", id).Delete(&Expense{}).Error; err != nil {
			return errors.Wrap(err, "delete expenses")
		}

		return errors.Wrap(tx.Delete(&Person{}, id).Error, "delete person")
	})
}

// ---------------------------------------------------------------------------------//
// Phone
// --------------------------------------------------------------------------------//

func (s *Store) ListPhones(personID uint) ([]Phone, error) {
	phones := []Phone{}
	err := s.db.Where("person_id = ?", personID).Order("id").Find(&phones).Error
	if err != nil {
		return nil, errors.Wrap(err, "list phones")
	}

	return phones, nil
}

func (s *Store) FindPhone(id uint) (*Phone, error) {
	phone := Phone{}
	if err := s.db.First(&phone, id).Error; err != nil {
		return nil, err
	}

	return &phone, nil
}

func (s *Store) CreatePhone(phone *Phone) error {
	if verr := phone.Validate(); verr != nil {
		return verr
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Person{}, phone.PersonID).Error; err != nil {
			return err
		}

		phone.ID = 0
		return errors.Wrap(tx.Create(phone).Error, "create phone")
	})
}

func (s *Store) UpdatePhone(id uint, phone *Phone) error {
	if verr := phone.Validate(); verr != nil {
		return verr
	}

	res := s.db.Model(&Phone{}).Where("id = ?", id).Select(editablePhoneFields).Updates(phone)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update phone")
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	phone.ID = id
	return nil
}

func (s *Store) DeletePhone(id uint) error {
	res := s.db.Delete(&Phone{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete phone")
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ---------------------------------------------------------------------------------//
// Expense
// --------------------------------------------------------------------------------//

// ListExpenses returns one page of expenses in insertion order.
func (s *Store) ListExpenses(page int) ([]Expense, *Paging, error) {
	var total int64
	expenses := []Expense{}

	if err := s.db.Model(&Expense{}).Count(&total).Error; err != nil {
		return nil, nil, errors.Wrap(err, "count expenses")
	}

	if err := checkPage(page, PAGE_SIZE, total); err != nil {
		return nil, nil, err
	}

	err := s.db.Scopes(paginate(page, PAGE_SIZE)).
		Preload("Person").Order("expenses.id").Find(&expenses).Error
	if err != nil {
		return nil, nil, errors.Wrap(err, "list expenses")
	}

	return expenses, newPaging(int64(page), PAGE_SIZE, total), nil
}

// AllExpenses returns every expense in insertion order.
func (s *Store) AllExpenses() ([]Expense, error) {
	expenses := []Expense{}
	err := s.db.Preload("Person").Order("expenses.id").Find(&expenses).Error
	if err != nil {
		return nil, errors.Wrap(err, "all expenses")
	}

	return expenses, nil
}

func (s *Store) FindExpense(id uint) (*Expense, error) {
	expense := Expense{}
	if err := s.db.Preload("Person").First(&expense, id).Error; err != nil {
		return nil, err
	}

	return &expense, nil
}

func (s *Store) CreateExpense(expense *Expense) error {
	if verr := expense.Validate(); verr != nil {
		return verr
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		person := Person{}
		if err := tx.First(&person, expense.PersonID).Error; err != nil {
			return err
		}

		now := s.now()
		expense.ID = 0
		expense.Created = now
		expense.Modified = now

		if err := tx.Omit("Person").Create(expense).Error; err != nil {
			return errors.Wrap(err, "create expense")
		}

		expense.Person = &person
		return nil
	})
}

func (s *Store) UpdateExpense(id uint, expense *Expense) error {
	if verr := expense.Validate(); verr != nil {
		return verr
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		existing := Expense{}
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		person := Person{}
		if err := tx.First(&person, expense.PersonID).Error; err != nil {
			return err
		}

		expense.ID = existing.ID
		expense.Created = existing.Created
		expense.Modified = s.now()

		err := tx.Model(&Expense{}).Where("id = ?", id).
			Select(editableExpenseFields).Omit("Person").Updates(expense).Error
		if err != nil {
			return errors.Wrap(err, "update expense")
		}

		expense.Person = &person
		return nil
	})
}

func (s *Store) DeleteExpense(id uint) error {
	res := s.db.Delete(&Expense{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete expense")
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
