package models

// CartProductNameField is the cart item key matched by the pName query filter
const CartProductNameField = "pName"
