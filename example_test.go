package pcre4j_test

import (
	"fmt"
	"log"

	pcre4j "github.com/alexey-pelykh/pcre4j-sub002"
	"github.com/alexey-pelykh/pcre4j-sub002/engine/native"
)

func Example() {
	p, err := pcre4j.Compile(native.New(), `(?P<key>\w+)=(?P<value>\w+)`, 0)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	m, err := p.Matcher("host=alpha port=22")
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	for ok, err := m.Find(); ok && err == nil; ok, err = m.Find() {
		key, _ := m.GroupNamed("key")
		value, _ := m.GroupNamed("value")
		fmt.Printf("%s -> %s\n", key, value)
	}
	// Output:
	// host -> alpha
	// port -> 22
}

func ExampleMatcher_ReplaceAll() {
	p, err := pcre4j.Compile(native.New(), `(\w+)@(\w+)`, 0)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	m, err := p.Matcher("write to bob@example")
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	out, err := m.ReplaceAll("$1 at $2")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
	// Output:
	// write to bob at example
}

func ExamplePattern_Split() {
	p, err := pcre4j.Compile(native.New(), `\s*,\s*`, 0)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	fields, err := p.Split("a, b ,c", -1)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%q\n", fields)
	// Output:
	// ["a" "b" "c"]
}

func ExampleMatcher_Results() {
	p, err := pcre4j.Compile(native.New(), `\d+`, 0)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	m, err := p.Matcher("10 jumps, 20 steps")
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	for r, err := range m.Results() {
		if err != nil {
			log.Fatal(err)
		}
		g, _ := r.Group(0)
		fmt.Println(g)
	}
	// Output:
	// 10
	// 20
}
