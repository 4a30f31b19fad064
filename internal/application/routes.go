package application

import (
	"telegram-menu-bot/internal/domain/model"
)

// cbHandler builds the reply for one button press.
type cbHandler func(ev model.Event) model.Reply

type prefixCB struct {
	Prefix string
	Fn     cbHandler
}

// Exact-match callbacks. Checked before any prefix family.
func (d *Dispatcher) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		IDCars:     d.submenuCBRoute("category_cars_text", d.menus.Cars),
		IDProperty: d.submenuCBRoute("category_property_text", d.menus.Property),
		IDSkins:    d.submenuCBRoute("category_skins_text", d.menus.Skins),
		IDAbout:    d.submenuCBRoute("info_about_text", d.menus.Back),
		IDSupport:  d.submenuCBRoute("info_support_text", d.menus.Back),
		IDMain:     d.mainMenuCBRoute,
	}
}

// Prefix-match callbacks, in match order.
func (d *Dispatcher) cbPrefixRoutes() []prefixCB {
	return []prefixCB{
		{Prefix: PrefixCar, Fn: d.optionPrefixCBRoute},
		{Prefix: PrefixProperty, Fn: d.optionPrefixCBRoute},
		{Prefix: PrefixSkin, Fn: d.optionPrefixCBRoute},
	}
}

func (d *Dispatcher) submenuCBRoute(textKey string, menu *model.MenuDefinition) cbHandler {
	return func(_ model.Event) model.Reply {
		return model.Reply{
			Text:     d.texts.T(textKey),
			Menu:     menu,
			Delivery: model.EditInPlace,
		}
	}
}

func (d *Dispatcher) mainMenuCBRoute(_ model.Event) model.Reply {
	r := d.greeting()
	r.Delivery = model.EditInPlace
	return r
}

func (d *Dispatcher) optionPrefixCBRoute(ev model.Event) model.Reply {
	label, ok := d.menus.OptionLabel(ev.Data)
	if !ok {
		// an option from an older keyboard layout
		label = ev.Data
	}
	return model.Reply{
		Text:     d.texts.T("option_placeholder", label),
		Menu:     d.menus.Main,
		Delivery: model.EditInPlace,
		Toast:    d.texts.T("toast_selected"),
	}
}

func (d *Dispatcher) unknownCBRoute(_ model.Event) model.Reply {
	return model.Reply{
		Text:     d.texts.T("unknown_action"),
		Menu:     d.menus.Main,
		Delivery: model.EditInPlace,
		Toast:    d.texts.T("toast_unknown"),
	}
}

// greeting is shared by /start and go_main.
func (d *Dispatcher) greeting() model.Reply {
	return model.Reply{
		Text:     d.texts.T("greeting"),
		Menu:     d.menus.Main,
		Delivery: model.SendNew,
	}
}

func (d *Dispatcher) useMenu() model.Reply {
	return model.Reply{
		Text:     d.texts.T("use_menu"),
		Delivery: model.SendNew,
	}
}
