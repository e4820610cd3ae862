package qnotebook

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCircuit(t *testing.T) {
	Convey("Given a Bell circuit", t, func() {
		circuit := NewCircuit(2).H(0).CX(0, 1)
		zero, _ := BasisState(2, 0)

		Convey("It should entangle |00⟩", func() {
			out, err := circuit.Run(zero)
			So(err, ShouldBeNil)
			So(out.EqualApprox(NewStateVector(1, 0, 0, 1).Normalized(), testTolerance), ShouldBeTrue)
			So(real(zero[0]), ShouldEqual, 1.0)
		})

		Convey("Its inverse should undo it", func() {
			out, _ := circuit.Run(zero)
			back, err := circuit.Inverse().Run(out)
			So(err, ShouldBeNil)
			So(back.EqualApprox(zero, testTolerance), ShouldBeTrue)
		})
	})

	Convey("Given a circuit with phase gates", t, func() {
		circuit := NewCircuit(3).H(0).S(1).T(2).RZ(0, 0.3).CX(0, 2).Y(1).Z(2).X(0).H(1)
		inverse := circuit.Inverse()

		Convey("The inverse should reverse the order and adjoin each gate", func() {
			So(len(inverse.Gates), ShouldEqual, len(circuit.Gates))
			So(inverse.Gates[0].Name, ShouldEqual, "H")
			So(inverse.Gates[len(inverse.Gates)-1].Name, ShouldEqual, "H")

			last := inverse.Gates[len(inverse.Gates)-3]
			So(last.Name, ShouldEqual, "T†")
			So(last.Theta, ShouldAlmostEqual, -math.Pi/4, testTolerance)
			So(inverse.Inverse().Gates[2].Name, ShouldEqual, "T")
		})

		Convey("Forward then inverse should restore random states", func() {
			rng := rand.New(rand.NewSource(3))
			for i := 0; i < 10; i++ {
				in := randomState(rng, 3)

				out, err := circuit.Run(in)
				So(err, ShouldBeNil)
				So(out.Norm(), ShouldAlmostEqual, 1, 1e-9)

				back, err := inverse.Run(out)
				So(err, ShouldBeNil)
				So(back.EqualApprox(in, 1e-9), ShouldBeTrue)
			}
		})
	})

	Convey("Given bad input", t, func() {
		zero, _ := BasisState(2, 0)

		_, err := NewCircuit(2).H(2).Run(zero)
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

		_, err = NewCircuit(2).CX(1, 1).Run(zero)
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

		_, err = NewCircuit(3).H(0).Run(zero)
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

		Convey("An impossible register size should be rejected, not shifted", func() {
			So(func() { _, err = NewCircuit(-1).Run(zero) }, ShouldNotPanic)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			out, err := NewCircuit(64).Run(StateVector{})
			So(out, ShouldBeNil)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})
	})
}
