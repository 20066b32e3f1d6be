package ptrutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToPtr(t *testing.T) {
	t.Run("Scalar", func(t *testing.T) {
		scalar := 123
		require.Equal(t, &scalar, ToPtr(scalar))
	})

	t.Run("Struct", func(t *testing.T) {
		value := struct{ i int }{i: 42}
		require.Equal(t, &value, ToPtr(value))
	})

	t.Run("Const", func(t *testing.T) {
		require.Equal(t, time.Minute, *ToPtr(time.Minute))
	})
}

func TestSetPtrIfNil(t *testing.T) {
	type test struct {
		name       string
		ptrToPtr   **time.Duration
		otherPtr   *time.Duration
		setToOther bool
	}

	var (
		nilPtr    *time.Duration
		nonNilPtr = ToPtr(time.Second)
		otherPtr  = ToPtr(time.Minute)
	)

	tests := []*test{
		{
			name:     "PtrToPtrNil",
			otherPtr: otherPtr,
		},
		{
			name:       "PtrNilSetToOther",
			ptrToPtr:   &nilPtr,
			otherPtr:   otherPtr,
			setToOther: true,
		},
		{
			name:     "PtrNonNilNotSet",
			ptrToPtr: &nonNilPtr,
			otherPtr: otherPtr,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.ptrToPtr == nil {
				SetPtrIfNil(test.ptrToPtr, test.otherPtr)
				require.Nil(t, test.ptrToPtr)

				return
			}

			expectedPtr := *test.ptrToPtr

			if test.setToOther {
				expectedPtr = test.otherPtr
			}

			SetPtrIfNil(test.ptrToPtr, test.otherPtr)

			require.Same(t, expectedPtr, *test.ptrToPtr)
		})
	}
}
