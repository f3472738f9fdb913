package fleet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
)

func TestService_FindOrCreateVehicle(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		setupMock func(m *fleet.MockRepository)
		wantID    int64
		wantErr   error
		anyErr    bool
	}

	tests := []testCase{
		{
			name:  "Existing",
			input: "  Car A ",
			setupMock: func(m *fleet.MockRepository) {
				m.EXPECT().
					FindVehicleByName(gomock.Any(), "Car A").
					Return(&fleet.Vehicle{ID: 7, Name: "Car A"}, nil)
			},
			wantID: 7,
		},
		{
			name:  "CreatedOnMiss",
			input: "Car Z",
			setupMock: func(m *fleet.MockRepository) {
				m.EXPECT().
					FindVehicleByName(gomock.Any(), "Car Z").
					Return(nil, fleet.ErrNotFound)
				m.EXPECT().
					CreateVehicle(gomock.Any(), &fleet.Vehicle{Name: "Car Z"}).
					DoAndReturn(func(_ context.Context, v *fleet.Vehicle) error {
						v.ID = 42
						return nil
					})
			},
			wantID: 42,
		},
		{
			name:    "BlankName",
			input:   "   ",
			wantErr: fleet.ErrBlankName,
		},
		{
			name:  "LookupError",
			input: "Car A",
			setupMock: func(m *fleet.MockRepository) {
				m.EXPECT().
					FindVehicleByName(gomock.Any(), "Car A").
					Return(nil, errors.New("db error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := fleet.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := fleet.NewService(repo)
			got, err := svc.FindOrCreateVehicle(context.Background(), tt.input)

			if tt.wantErr != nil || tt.anyErr {
				assert.Error(t, err)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestService_FindOrCreateMember(t *testing.T) {
	t.Run("BlankMeansNoMember", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := fleet.NewService(fleet.NewMockRepository(ctrl))

		got, err := svc.FindOrCreateMember(context.Background(), " ")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("CreatedWithDefaultType", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := fleet.NewMockRepository(ctrl)

		repo.EXPECT().FindMemberByName(gomock.Any(), "Driver9").Return(nil, fleet.ErrNotFound)
		repo.EXPECT().
			CreateMember(gomock.Any(), &fleet.Member{Name: "Driver9", Type: fleet.DefaultMemberType}).
			DoAndReturn(func(_ context.Context, m *fleet.Member) error {
				m.ID = 3
				return nil
			})

		got, err := fleet.NewService(repo).FindOrCreateMember(context.Background(), "Driver9")
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		assert.Equal(t, fleet.DefaultMemberType, got.Type)
	})

	t.Run("Existing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := fleet.NewMockRepository(ctrl)

		repo.EXPECT().FindMemberByName(gomock.Any(), "Owner").Return(&fleet.Member{ID: 1, Name: "Owner"}, nil)

		got, err := fleet.NewService(repo).FindOrCreateMember(context.Background(), "Owner")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
	})
}

func TestService_CreateMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := fleet.NewMockRepository(ctrl)

	repo.EXPECT().CreateMember(gomock.Any(), &fleet.Member{Name: "Ravi", Type: "Driver"}).Return(nil)

	svc := fleet.NewService(repo)

	got, err := svc.CreateMember(context.Background(), "Ravi", "Driver")
	require.NoError(t, err)
	assert.Equal(t, "Driver", got.Type)

	_, err = svc.CreateMember(context.Background(), "", "Driver")
	assert.ErrorIs(t, err, fleet.ErrBlankName)
}

func TestService_Seed(t *testing.T) {
	t.Run("EmptyCatalog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := fleet.NewMockRepository(ctrl)

		repo.EXPECT().ListVehicles(gomock.Any()).Return(nil, nil)
		repo.EXPECT().ListMembers(gomock.Any()).Return(nil, nil)

		var vehicles []string

		repo.EXPECT().CreateVehicle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, v *fleet.Vehicle) error {
				vehicles = append(vehicles, v.Name)
				return nil
			}).Times(3)

		types := map[string]string{}

		repo.EXPECT().CreateMember(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *fleet.Member) error {
				types[m.Name] = m.Type
				return nil
			}).Times(4)

		require.NoError(t, fleet.NewService(repo).Seed(context.Background()))

		assert.Equal(t, []string{"Car A", "Car B", "Car C"}, vehicles)
		assert.Equal(t, map[string]string{
			"Owner":      "Member",
			"Driver1":    "Driver",
			"Driver2":    "Driver",
			"Supervisor": "Member",
		}, types)
	})

	t.Run("PopulatedCatalog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := fleet.NewMockRepository(ctrl)

		repo.EXPECT().ListVehicles(gomock.Any()).Return([]*fleet.Vehicle{{ID: 1, Name: "Truck"}}, nil)
		repo.EXPECT().ListMembers(gomock.Any()).Return([]*fleet.Member{{ID: 1, Name: "Me"}}, nil)

		require.NoError(t, fleet.NewService(repo).Seed(context.Background()))
	})
}

func TestService_Directory(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := fleet.NewMockRepository(ctrl)

	repo.EXPECT().ListVehicles(gomock.Any()).Return([]*fleet.Vehicle{{ID: 1, Name: "Car A"}}, nil)
	repo.EXPECT().ListMembers(gomock.Any()).Return([]*fleet.Member{{ID: 5, Name: "Owner"}}, nil)

	dir, err := fleet.NewService(repo).Directory(context.Background())
	require.NoError(t, err)

	memberID := int64(5)
	unknown := int64(6)

	assert.Equal(t, "Car A", dir.VehicleName(1))
	assert.Equal(t, "", dir.VehicleName(2))
	assert.Equal(t, "Owner", dir.MemberName(&memberID))
	assert.Equal(t, "", dir.MemberName(&unknown))
	assert.Equal(t, "", dir.MemberName(nil))
}
