package application

import (
	"fmt"

	"telegram-menu-bot/internal/domain"
	"telegram-menu-bot/internal/domain/model"
)

// Button identifiers. Option identifiers are matched by family prefix.
const (
	IDCars     = "category_cars"
	IDProperty = "category_property"
	IDSkins    = "category_skins"
	IDAbout    = "info_about"
	IDSupport  = "info_support"
	IDMain     = "go_main"

	PrefixCar      = "car_"
	PrefixProperty = "prop_"
	PrefixSkin     = "skin_"
)

// Texts resolves catalog keys to user-facing strings.
type Texts interface {
	T(key string, args ...interface{}) string
}

// Menus holds every keyboard the bot can show. Built once, read-only afterwards.
type Menus struct {
	Main     *model.MenuDefinition
	Cars     *model.MenuDefinition
	Property *model.MenuDefinition
	Skins    *model.MenuDefinition
	Back     *model.MenuDefinition
}

func NewMenus(texts Texts) (*Menus, error) {
	btn := func(id, key string) model.Button {
		return model.Button{Label: texts.T(key), ID: id}
	}
	// option labels are keyed by identifier
	opt := func(id string) model.Button {
		return model.Button{Label: texts.T("button_" + id), ID: id}
	}
	back := model.Button{Label: texts.T("button_back"), ID: IDMain}

	m := &Menus{
		Main: model.NewMenu("main",
			model.Row{btn(IDCars, "button_cars"), btn(IDProperty, "button_property")},
			model.Row{btn(IDSkins, "button_skins")},
			model.Row{btn(IDAbout, "button_about")},
			model.Row{btn(IDSupport, "button_support")},
		),
		Cars: model.NewMenu("cars",
			model.Row{opt("car_sedan"), opt("car_suv")},
			model.Row{opt("car_sport"), opt("car_moto")},
			model.Row{back},
		),
		Property: model.NewMenu("property",
			model.Row{opt("prop_apartment"), opt("prop_house")},
			model.Row{opt("prop_business"), opt("prop_garage")},
			model.Row{back},
		),
		Skins: model.NewMenu("skins",
			model.Row{opt("skin_clothes"), opt("skin_accessories")},
			model.Row{opt("skin_vehicle"), opt("skin_limited")},
			model.Row{back},
		),
		Back: model.NewMenu("back", model.Row{back}),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// All returns the menus in display order.
func (m *Menus) All() []*model.MenuDefinition {
	return []*model.MenuDefinition{m.Main, m.Cars, m.Property, m.Skins, m.Back}
}

func (m *Menus) Validate() error {
	for _, menu := range m.All() {
		if err := menu.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidMenu, err)
		}
	}
	return nil
}

// OptionLabel finds the label of an option button in any submenu.
func (m *Menus) OptionLabel(id string) (string, bool) {
	for _, menu := range []*model.MenuDefinition{m.Cars, m.Property, m.Skins} {
		if label, ok := menu.Lookup(id); ok {
			return label, true
		}
	}
	return "", false
}
