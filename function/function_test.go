package function

import (
	"testing"

	"github.com/slovolang/slovo/objects"
	"github.com/stretchr/testify/require"
)

func TestClassMethodInheritanceAndSubclassCheck(t *testing.T) {
	animal := NewClass("Animal")
	animal.Methods["speak"] = &Closure{Name: "speak"}

	dog := NewClass("Dog")
	dog.Super = animal
	dog.Methods["bark"] = &Closure{Name: "bark"}

	m, ok := dog.LookupMethod("speak")
	require.True(t, ok)
	require.Equal(t, "speak", m.Name)

	_, ok = animal.LookupMethod("bark")
	require.False(t, ok)

	require.True(t, dog.IsSubclassOf(animal))
	require.False(t, animal.IsSubclassOf(dog))
}

func TestClassMethodOverrideShadowsParent(t *testing.T) {
	animal := NewClass("Animal")
	animal.Methods["speak"] = &Closure{Name: "animal-speak"}
	dog := NewClass("Dog")
	dog.Super = animal
	dog.Methods["speak"] = &Closure{Name: "dog-speak"}

	m, _ := dog.LookupMethod("speak")
	require.Equal(t, "dog-speak", m.Name)
}

func TestInstanceGetFallsBackToBoundMethod(t *testing.T) {
	cls := NewClass("Counter")
	cls.Methods["inc"] = &Closure{Name: "inc"}
	inst := NewInstance(cls)

	v, ok := inst.Get("inc")
	require.True(t, ok)
	bound := v.(*Closure)
	require.Same(t, inst, bound.This)
}

func TestInstanceOwnPropertyShadowsMethod(t *testing.T) {
	cls := NewClass("Box")
	inst := NewInstance(cls)
	inst.Props.Set("value", objects.NewNumber(42))

	v, ok := inst.Get("value")
	require.True(t, ok)
	require.Equal(t, float64(42), v.(*objects.Number).Value)
}
