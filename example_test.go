package placeholder_test

import (
	"fmt"

	"github.com/zephyrtronium/placeholder"
)

func Example() {
	double := placeholder.X1.Mul(2)
	fmt.Println(double)
	v, _ := double.Call(21)
	fmt.Println(v)
	// Output:
	// _1 * 2
	// 42
}

func ExampleSlot() {
	third := placeholder.Slot(3)
	v, _ := third.Call("a", "b", "c")
	fmt.Println(v)
	// Output:
	// c
}

func ExampleExpr_Apply() {
	concat := func(a, b string) string { return a + b }
	// Swap the arguments before applying.
	swapped := placeholder.Fn(concat).Apply(placeholder.X2, placeholder.X1)
	v, _ := swapped.Call("world", "hello ")
	fmt.Println(v)
	// Output:
	// hello world
}

func ExampleVal() {
	squares := placeholder.Val(map[int]int{1: 1, 2: 4, 3: 9})
	at := squares.Index(placeholder.X1)
	for n := 1; n <= 3; n++ {
		v, _ := at.Call(n)
		fmt.Println(v)
	}
	// Output:
	// 1
	// 4
	// 9
}

func ExampleExpr_Attr() {
	type point struct{ X, Y int }
	dot := placeholder.X1.Attr("X").Mul(placeholder.X2.Attr("X")).
		Add(placeholder.X1.Attr("Y").Mul(placeholder.X2.Attr("Y")))
	fmt.Println(dot)
	v, _ := dot.Call(point{1, 2}, point{3, 4})
	fmt.Println(v)
	// Output:
	// (_1.X * (_2.X)) + (_1.Y * (_2.Y))
	// 11
}
