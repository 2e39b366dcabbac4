package repository

import "errors"

// ErrCondicionNoCumplida indica que un UPDATE condicional no afectó ninguna
// fila: la guarda en el WHERE (stock suficiente, límite de crédito, estado
// esperado) no se cumplió al momento de ejecutar. El servicio lo traduce al
// error de dominio correspondiente.
var ErrCondicionNoCumplida = errors.New("repository: condición no cumplida")
