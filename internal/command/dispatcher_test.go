package command

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/schoolcli/internal/school"
	"github.com/shrimpsizemoose/schoolcli/internal/store/memory"
)

type MockTrainees struct {
	mock.Mock
}

func (m *MockTrainees) Add(ctx context.Context, firstName, lastName string) (string, error) {
	args := m.Called(firstName, lastName)
	return args.String(0), args.Error(1)
}

func (m *MockTrainees) Update(ctx context.Context, ref school.Ref, firstName, lastName string) (string, error) {
	args := m.Called(ref, firstName, lastName)
	return args.String(0), args.Error(1)
}

func (m *MockTrainees) Delete(ctx context.Context, ref school.Ref) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

func (m *MockTrainees) Get(ctx context.Context, ref school.Ref) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

func (m *MockTrainees) GetAll(ctx context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Lock(ctx context.Context) (func() error, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func() error), args.Error(1)
}

type setup struct {
	dispatcher *Dispatcher
	ctx        context.Context
}

func setupDispatcher(t *testing.T) *setup {
	t.Helper()
	s := memory.New()
	trainees := school.NewTraineeService(s, s)
	courses := school.NewCourseService(s, trainees)
	return &setup{
		dispatcher: NewDispatcher(trainees, courses, s, time.Second),
		ctx:        context.Background(),
	}
}

var createdID = regexp.MustCompile(`^CREATED: (\d+) `)

// mustCreate runs an ADD line and returns the generated ID.
func (s *setup) mustCreate(t *testing.T, input string) string {
	t.Helper()
	res := s.dispatcher.Execute(s.ctx, input)
	require.NoError(t, res.Err)
	m := createdID.FindStringSubmatch(res.Output)
	require.NotNil(t, m, "unexpected output %q", res.Output)
	return m[1]
}

func (s *setup) run(t *testing.T, input string) Result {
	t.Helper()
	return s.dispatcher.Execute(s.ctx, input)
}

func TestExecuteScenario(t *testing.T) {
	s := setupDispatcher(t)

	res := s.run(t, "TRAINEE ADD jOHN doe")
	require.NoError(t, res.Err)
	assert.Regexp(t, `^CREATED: \d+ John Doe$`, res.Output)
	traineeID := createdID.FindStringSubmatch(res.Output)[1]

	courseID := s.mustCreate(t, `COURSE ADD "Data 101" 2026-05-01`)

	res = s.run(t, "COURSE JOIN "+courseID+" "+traineeID)
	require.NoError(t, res.Err)
	assert.Equal(t, "John Doe Joined Data 101", res.Output)

	res = s.run(t, "COURSE JOIN "+courseID+" "+traineeID)
	assert.Equal(t, "ERROR: The Trainee has already joined this course", res.Output)
	assert.ErrorIs(t, res.Err, school.ErrConflict)

	res = s.run(t, "TRAINEE GET "+traineeID)
	require.NoError(t, res.Err)
	assert.Equal(t, traineeID+" John Doe\nCourses: Data 101", res.Output)

	res = s.run(t, "COURSE LEAVE "+courseID+" "+traineeID)
	require.NoError(t, res.Err)
	assert.Equal(t, "John Doe Left Data 101", res.Output)

	res = s.run(t, "COURSE GET "+courseID)
	require.NoError(t, res.Err)
	assert.Equal(t, courseID+" Data 101 2026-05-01\nParticipants (0):", res.Output)
}

func TestExecuteErrors(t *testing.T) {
	s := setupDispatcher(t)

	testCases := []struct {
		name   string
		input  string
		output string
		kind   school.Kind
	}{
		{"too short", "TRAINEE", usage, school.KindParseFailure},
		{"unknown subcommand", "TRAINEE FOO", "ERROR: Unknown trainee subcommand 'FOO'", school.KindUnknownSubcommand},
		{"bad date", "COURSE ADD Go 2025-02-30", "ERROR: Invalid start date. Must be in yyyy-MM-dd format", school.KindInvalidFormat},
		{"missing names", "TRAINEE ADD john", "ERROR: Must provide first and last name", school.KindMissingField},
		{"course before trainee", "COURSE JOIN x y", "ERROR: Course with ID x does not exist", school.KindNotFound},
		{"malformed trainee id", "TRAINEE GET abc", "ERROR: Trainee with ID abc not found", school.KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := s.run(t, tc.input)
			require.Error(t, res.Err)
			assert.Equal(t, tc.output, res.Output)
			assert.Equal(t, tc.kind, school.KindOf(res.Err))
			assert.False(t, res.Quit)
		})
	}
}

func TestExecuteQuitAndIgnored(t *testing.T) {
	s := setupDispatcher(t)

	res := s.run(t, "QUIT")
	assert.Equal(t, Result{Quit: true}, res)

	res = s.run(t, "q")
	assert.True(t, res.Quit)

	res = s.run(t, "HELLO WORLD")
	assert.Equal(t, Result{}, res)

	res = s.run(t, "COURSE GETALL")
	require.NoError(t, res.Err)
	assert.Equal(t, "Courses:\n\nTotal: 0", res.Output)
}

func TestExecuteRoutesToServices(t *testing.T) {
	trainees := new(MockTrainees)
	trainees.On("Update", school.Ref("101"), "jane", "").Return("UPDATED: 101 Jane Doe", nil)
	trainees.On("Delete", school.Ref("9")).Return("", errors.New("connection reset"))

	d := NewDispatcher(trainees, nil, nil, 0)
	ctx := context.Background()

	res := d.Execute(ctx, "trainee update 101 jane")
	require.NoError(t, res.Err)
	assert.Equal(t, "UPDATED: 101 Jane Doe", res.Output)

	res = d.Execute(ctx, "TRAINEE DELETE 9")
	assert.Equal(t, "ERROR: connection reset", res.Output)
	assert.Equal(t, school.KindInternal, school.KindOf(res.Err))

	trainees.AssertExpectations(t)
}

func TestExecuteLocking(t *testing.T) {
	t.Run("releases the lock after each command", func(t *testing.T) {
		trainees := new(MockTrainees)
		trainees.On("GetAll").Return("Trainees:\n\nTotal: 0", nil)

		released := 0
		locker := new(MockLocker)
		locker.On("Lock").Return(func() error {
			released++
			return nil
		}, nil)

		d := NewDispatcher(trainees, nil, locker, time.Second)
		res := d.Execute(context.Background(), "TRAINEE GETALL")
		require.NoError(t, res.Err)
		assert.Equal(t, 1, released)
		locker.AssertNumberOfCalls(t, "Lock", 1)
	})

	t.Run("lock failure skips the command", func(t *testing.T) {
		trainees := new(MockTrainees)
		locker := new(MockLocker)
		locker.On("Lock").Return(nil, context.DeadlineExceeded)

		d := NewDispatcher(trainees, nil, locker, time.Millisecond)
		res := d.Execute(context.Background(), "TRAINEE GETALL")
		assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
		trainees.AssertNotCalled(t, "GetAll")
	})

	t.Run("quit never locks", func(t *testing.T) {
		locker := new(MockLocker)
		d := NewDispatcher(new(MockTrainees), nil, locker, 0)
		assert.True(t, d.Execute(context.Background(), "QUIT").Quit)
		locker.AssertNotCalled(t, "Lock")
	})
}
